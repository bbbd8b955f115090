package domain

// ArticleRecord is one collected news item. Identity is the URL; records are
// immutable once stored. The JSON field set is the published dataset schema.
type ArticleRecord struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	MediaURL    string `json:"media_url"`
	PublishDate string `json:"publish_date"`
	Topic       string `json:"my_topic"`
}

// PageMeta carries metadata scraped from an article page, used to enrich
// records that arrive without a description.
type PageMeta struct {
	Title       string
	Description string
}
