package catalog

import (
	"testing"

	"github.com/dyluth/perch/pkg/event"
	"github.com/dyluth/perch/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDefault(t *testing.T) *registry.Registry {
	t.Helper()
	r, err := registry.Build(Default()...)
	require.NoError(t, err)
	return r
}

func resolve(t *testing.T, r *registry.Registry, kind int, c registry.Category) registry.Handler {
	t.Helper()
	h, ok := r.ResolveKind(kind, c)
	require.True(t, ok, "kind %d category %s", kind, c)
	return h
}

func TestDefault_Notes(t *testing.T) {
	r := buildDefault(t)

	for _, kind := range []int{event.KindTextNote, event.KindComment} {
		assert.Equal(t, "NoteCard", resolve(t, r, kind, registry.CategoryFullCard))
		assert.Equal(t, "NoteCardCompact", resolve(t, r, kind, registry.CategoryCompactCard))
		assert.Equal(t, "NoteEmbed", resolve(t, r, kind, registry.CategoryEmbedded))
	}
}

func TestDefault_FallbacksForUnknownKinds(t *testing.T) {
	r := buildDefault(t)

	assert.Equal(t, "GenericCard", resolve(t, r, 4242, registry.CategoryFullCard))
	assert.Equal(t, "GenericCardCompact", resolve(t, r, 4242, registry.CategoryCompactCard))
	assert.Equal(t, "GenericEmbed", resolve(t, r, 4242, registry.CategoryEmbedded))
	assert.Equal(t, "HashtagChip", resolve(t, r, 4242, registry.CategoryHashtag))
	assert.Equal(t, "MentionChip", resolve(t, r, 4242, registry.CategoryMention))
}

func TestDefault_ReactionHasNoCardButFallsBack(t *testing.T) {
	r := buildDefault(t)

	assert.Equal(t, "ReactionCompact", resolve(t, r, event.KindReaction, registry.CategoryCompactCard))
	assert.Equal(t, "GenericCard", resolve(t, r, event.KindReaction, registry.CategoryFullCard))
}

func TestDefault_ProfileMentionOutranksChip(t *testing.T) {
	r := buildDefault(t)

	assert.Equal(t, "ProfileMention", resolve(t, r, event.KindMetadata, registry.CategoryMention))
	assert.Equal(t, "MentionChip", resolve(t, r, event.KindTextNote, registry.CategoryMention))
}

func TestDefault_MediaAndLinkTiers(t *testing.T) {
	r := buildDefault(t)

	assert.Equal(t, "MediaCarousel", resolve(t, r, event.KindTextNote, registry.CategoryMedia))
	assert.Equal(t, "LinkRender", resolve(t, r, event.KindTextNote, registry.CategoryLink))

	var media []registry.Handler
	for _, reg := range r.Candidates(event.KindTextNote, registry.CategoryMedia) {
		media = append(media, reg.Handler)
	}
	assert.Equal(t, []registry.Handler{"MediaCarousel", "MediaBento", "MediaBasic"}, media)
}

func TestDefault_AppHandlers(t *testing.T) {
	r := buildDefault(t)

	assert.Equal(t, "AppHandlerCard", resolve(t, r, event.KindHandlerInformation, registry.CategoryFullCard))
	assert.Equal(t, "AppHandlerCompact", resolve(t, r, event.KindHandlerInformation, registry.CategoryCompactCard))
	assert.Equal(t, "AppRecommendationCard", resolve(t, r, event.KindHandlerRecommendation, registry.CategoryFullCard))
}

func TestDefault_EveryEventResolvesInEveryCategory(t *testing.T) {
	r := buildDefault(t)

	ev := &event.Event{Kind: 12345}
	assert.Len(t, r.ResolveAll(ev), len(registry.AllCategories()))
}

func TestDefault_LaterSetupCanOverride(t *testing.T) {
	override := func(reg registry.Registrar) error {
		return reg.RegisterKindHandler([]int{event.KindTextNote}, "CustomNote", PriorityCard, registry.CategoryFullCard)
	}

	r, err := registry.Build(append(Default(), override)...)
	require.NoError(t, err)

	assert.Equal(t, "CustomNote", resolve(t, r, event.KindTextNote, registry.CategoryFullCard))
	assert.Equal(t, "NoteCard", resolve(t, r, event.KindComment, registry.CategoryFullCard))
}
