package schema

const ProductViewSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "product_view",
	"fields": [
		{"name": "product_id", "type": "long"},
		{"name": "user_id", "type": "string", "default": ""},
		{"name": "viewed_at", "type": "long"}
	]
}`

const SiteVisitSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "site_visit",
	"fields": [
		{"name": "page_url", "type": "string"},
		{"name": "user_id", "type": "string", "default": ""},
		{"name": "visited_at", "type": "long"}
	]
}`

type (
	// ProductViewV1 is the wire form of a product detail-page view.
	// ViewedAt is unix milliseconds.
	ProductViewV1 struct {
		ProductID int64  `avro:"product_id"`
		UserID    string `avro:"user_id"`
		ViewedAt  int64  `avro:"viewed_at"`
	}

	// SiteVisitV1 is the wire form of a storefront page load.
	// VisitedAt is unix milliseconds.
	SiteVisitV1 struct {
		PageURL   string `avro:"page_url"`
		UserID    string `avro:"user_id"`
		VisitedAt int64  `avro:"visited_at"`
	}
)
