// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

// Tag is a semantic label attached to a column. The constants below form
// the well-known vocabulary; any other string is a valid free-form tag
// and is treated identically.
type Tag string

const (
	TagCategorical Tag = "categorical"
	TagContinuous  Tag = "continuous"
	TagList        Tag = "list"
	TagText        Tag = "text"
	TagTokenized   Tag = "tokenized"
	TagTime        Tag = "time"
	TagID          Tag = "id"
	TagItem        Tag = "item"
	TagItemID      Tag = "item_id"
	TagUser        Tag = "user"
	TagUserID      Tag = "user_id"
	TagSession     Tag = "session"
	TagSessionID   Tag = "session_id"
	TagContext     Tag = "context"
	TagTarget      Tag = "target"
	TagBinary      Tag = "binary"
	TagRegression  Tag = "regression"
	TagEmbedding   Tag = "embedding"
)

// String returns the tag's string value.
func (t Tag) String() string { return string(t) }

// WellKnownTags returns the predefined tag vocabulary, in a stable order.
func WellKnownTags() []Tag {
	return []Tag{
		TagCategorical, TagContinuous, TagList, TagText, TagTokenized,
		TagTime, TagID, TagItem, TagItemID, TagUser, TagUserID,
		TagSession, TagSessionID, TagContext, TagTarget, TagBinary,
		TagRegression, TagEmbedding,
	}
}
