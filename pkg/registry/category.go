package registry

import "fmt"

// Category is an independent rendering concern. Each category is resolved on its own;
// registering for one never affects another.
type Category string

const (
	// CategoryFullCard is the full timeline card for an event
	CategoryFullCard Category = "full-card"

	// CategoryCompactCard is the condensed card used in quoted or nested contexts
	CategoryCompactCard Category = "compact-card"

	// CategoryEmbedded is the inline view of an event referenced from another event's content
	CategoryEmbedded Category = "embedded"

	// CategoryHashtag renders a hashtag reference
	CategoryHashtag Category = "hashtag"

	// CategoryMention renders a profile mention
	CategoryMention Category = "mention"

	// CategoryLink renders a URL found in content
	CategoryLink Category = "link"

	// CategoryMedia renders images and video found in content
	CategoryMedia Category = "media"
)

// AllCategories returns every category in display order.
func AllCategories() []Category {
	return []Category{
		CategoryFullCard,
		CategoryCompactCard,
		CategoryEmbedded,
		CategoryHashtag,
		CategoryMention,
		CategoryLink,
		CategoryMedia,
	}
}

// Validate checks if the Category is a valid enum value.
func (c Category) Validate() error {
	switch c {
	case CategoryFullCard, CategoryCompactCard, CategoryEmbedded,
		CategoryHashtag, CategoryMention, CategoryLink, CategoryMedia:
		return nil
	default:
		return fmt.Errorf("unknown category: %q", c)
	}
}
