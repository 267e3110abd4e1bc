package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventJSON_NostrShape(t *testing.T) {
	raw := `{"id":"abc","pubkey":"def","created_at":1700000000,"kind":1,"tags":[["t","nostr"],["p","xyz","wss://relay"]],"content":"hello","sig":"00"}`

	var e Event
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	assert.Equal(t, "abc", e.ID)
	assert.Equal(t, KindTextNote, e.Kind)
	ts, ok := e.Timestamp()
	assert.True(t, ok)
	assert.Equal(t, int64(1700000000), ts)
	assert.Len(t, e.Tags, 2)
	assert.Equal(t, "t", e.Tags[0].Key())
	assert.Equal(t, "xyz", e.Tags[1].Value())
}

func TestEventJSON_MissingCreatedAt(t *testing.T) {
	var e Event
	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc","kind":1}`), &e))

	_, ok := e.Timestamp()
	assert.False(t, ok)
	assert.Nil(t, e.CreatedAt)
}

func TestTagHelpers(t *testing.T) {
	assert.Equal(t, "", Tag{}.Key())
	assert.Equal(t, "", Tag{"d"}.Value())
	assert.Equal(t, "slug", Tag{"d", "slug"}.Value())

	e := &Event{Tags: []Tag{{"t", "go"}, {"d", "first"}, {"d", "second"}}}
	v, ok := e.TagValue("d")
	assert.True(t, ok)
	assert.Equal(t, "first", v)

	_, ok = e.TagValue("e")
	assert.False(t, ok)
}

func TestEventValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		e := &Event{Kind: KindTextNote, Tags: []Tag{{"t", "go"}}}
		assert.NoError(t, e.Validate())
	})

	t.Run("negative kind", func(t *testing.T) {
		e := &Event{Kind: -1}
		err := e.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid kind")
	})

	t.Run("empty tag", func(t *testing.T) {
		e := &Event{Kind: KindTextNote, Tags: []Tag{{"t", "go"}, {}}}
		err := e.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "index 1")
	})
}

func TestCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		event   *Event
		want    string
		wantErr bool
	}{
		{"metadata", &Event{Kind: KindMetadata, PubKey: "pk"}, "0:pk", false},
		{"contacts", &Event{Kind: KindContacts, PubKey: "pk"}, "3:pk", false},
		{"replaceable range", &Event{Kind: 10002, PubKey: "pk"}, "10002:pk", false},
		{"addressable with d tag", &Event{Kind: KindLongForm, PubKey: "pk", Tags: []Tag{{"d", "post"}}}, "30023:pk:post", false},
		{"addressable without d tag", &Event{Kind: KindHandlerInformation, PubKey: "pk"}, "31990:pk:", false},
		{"regular note", &Event{Kind: KindTextNote, PubKey: "pk"}, "", true},
		{"ephemeral", &Event{Kind: 20001, PubKey: "pk"}, "", true},
		{"missing pubkey", &Event{Kind: KindMetadata}, "", true},
		{"nil", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coordinate(tt.event)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoordinate_NotReplaceableSentinel(t *testing.T) {
	_, err := Coordinate(&Event{Kind: KindReaction, PubKey: "pk"})
	assert.ErrorIs(t, err, ErrNotReplaceable)
}
