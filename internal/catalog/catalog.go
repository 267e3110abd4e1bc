// Package catalog holds the built-in renderer registrations. Each component
// family is a registry.SetupFunc; Default returns them in load order.
//
// Handler references are component names. The UI layer maps a name to the
// component it mounts.
package catalog

import (
	"github.com/dyluth/perch/pkg/event"
	"github.com/dyluth/perch/pkg/registry"
)

// Priorities used across the catalog. Fallback tiers sit at the bottom so any
// kind-specific registration outranks them within its own kinds.
const (
	PriorityFallback = 1
	PriorityCompact  = 5
	PriorityCard     = 10

	PriorityMediaBasic    = 1
	PriorityMediaBento    = 8
	PriorityMediaCarousel = 10

	PriorityLinkBasic   = 1
	PriorityLinkPreview = 5
	PriorityLinkRender  = 10
)

var noteKinds = []int{event.KindTextNote, event.KindComment}

// entry is a single kind-specific registration in a component family.
type entry struct {
	kinds    []int
	handler  string
	priority int
	category registry.Category
}

// family turns a list of entries into a SetupFunc.
func family(entries ...entry) registry.SetupFunc {
	return func(r registry.Registrar) error {
		for _, e := range entries {
			if err := r.RegisterKindHandler(e.kinds, e.handler, e.priority, e.category); err != nil {
				return err
			}
		}
		return nil
	}
}

// Notes registers short text notes and comments.
var Notes = family(
	entry{noteKinds, "NoteCard", PriorityCard, registry.CategoryFullCard},
	entry{noteKinds, "NoteCardCompact", PriorityCompact, registry.CategoryCompactCard},
	entry{noteKinds, "NoteEmbed", PriorityCompact, registry.CategoryEmbedded},
)

// Articles registers long-form content.
var Articles = family(
	entry{[]int{event.KindLongForm}, "ArticleCard", PriorityCard, registry.CategoryFullCard},
	entry{[]int{event.KindLongForm}, "ArticleCardCompact", PriorityCompact, registry.CategoryCompactCard},
	entry{[]int{event.KindLongForm}, "ArticleEmbed", PriorityCompact, registry.CategoryEmbedded},
)

// Highlights registers highlight cards.
var Highlights = family(
	entry{[]int{event.KindHighlight}, "HighlightCard", PriorityCard, registry.CategoryFullCard},
	entry{[]int{event.KindHighlight}, "HighlightEmbed", PriorityCompact, registry.CategoryEmbedded},
)

// Reactions registers the compact reaction view. Reactions have no full card.
var Reactions = family(
	entry{[]int{event.KindReaction}, "ReactionCompact", PriorityCompact, registry.CategoryCompactCard},
)

// Reposts registers both repost kinds.
var Reposts = family(
	entry{[]int{event.KindRepost, event.KindGenericRepost}, "RepostCard", PriorityCard, registry.CategoryFullCard},
)

// AppHandlers registers application handler descriptors and recommendations.
var AppHandlers = family(
	entry{[]int{event.KindHandlerInformation}, "AppHandlerCard", PriorityCard, registry.CategoryFullCard},
	entry{[]int{event.KindHandlerInformation}, "AppHandlerCompact", PriorityCompact, registry.CategoryCompactCard},
	entry{[]int{event.KindHandlerRecommendation}, "AppRecommendationCard", PriorityCard, registry.CategoryFullCard},
)

// Profiles registers metadata cards and the profile mention chip.
var Profiles = family(
	entry{[]int{event.KindMetadata}, "ProfileCard", PriorityCard, registry.CategoryFullCard},
	entry{[]int{event.KindMetadata}, "ProfileCardCompact", PriorityCompact, registry.CategoryCompactCard},
	entry{[]int{event.KindMetadata}, "ProfileMention", PriorityCard, registry.CategoryMention},
)

// Generic registers the kind-wide fallbacks for the card, embed, hashtag and mention categories.
func Generic(r registry.Registrar) error {
	fallbacks := []struct {
		handler  string
		category registry.Category
	}{
		{"GenericCard", registry.CategoryFullCard},
		{"GenericCardCompact", registry.CategoryCompactCard},
		{"GenericEmbed", registry.CategoryEmbedded},
		{"HashtagChip", registry.CategoryHashtag},
		{"MentionChip", registry.CategoryMention},
	}

	for _, f := range fallbacks {
		if err := r.RegisterFallback(f.handler, PriorityFallback, f.category); err != nil {
			return err
		}
	}
	return nil
}

// Media registers the media tiers. The carousel outranks the bento grid, which
// outranks the plain renderer.
func Media(r registry.Registrar) error {
	tiers := []struct {
		handler  string
		priority int
	}{
		{"MediaBasic", PriorityMediaBasic},
		{"MediaCarousel", PriorityMediaCarousel},
		{"MediaBento", PriorityMediaBento},
	}

	for _, tier := range tiers {
		if err := r.RegisterFallback(tier.handler, tier.priority, registry.CategoryMedia); err != nil {
			return err
		}
	}
	return nil
}

// Links registers the link tiers.
func Links(r registry.Registrar) error {
	tiers := []struct {
		handler  string
		priority int
	}{
		{"LinkBasic", PriorityLinkBasic},
		{"LinkPreview", PriorityLinkPreview},
		{"LinkRender", PriorityLinkRender},
	}

	for _, tier := range tiers {
		if err := r.RegisterFallback(tier.handler, tier.priority, registry.CategoryLink); err != nil {
			return err
		}
	}
	return nil
}

// Default returns every built-in family in load order.
func Default() []registry.SetupFunc {
	return []registry.SetupFunc{
		Generic,
		Notes,
		Articles,
		Highlights,
		Reactions,
		Reposts,
		AppHandlers,
		Profiles,
		Media,
		Links,
	}
}
