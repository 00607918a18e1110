package document

import (
	"time"

	"github.com/google/uuid"
)

// Node kinds follow the NABH layering: chapters contain standards, which
// contain objective elements.
const (
	KindChapter          = "chapter"
	KindStandard         = "standard"
	KindObjectiveElement = "objective_element"
)

// Node maps to the accreditation_node table. Code is the dotted NABH
// identifier ("AAC", "AAC.1", "AAC.1.2"), unique within a hospital's tree.
type Node struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Code      string     `db:"code" json:"code"`
	Title     string     `db:"title" json:"title"`
	Kind      string     `db:"kind" json:"kind"`
	ParentID  *uuid.UUID `db:"parent_id" json:"parent_id,omitempty"`
	BlobKey   *string    `db:"blob_key" json:"blob_key,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`

	Children []*Node `db:"-" json:"children,omitempty"`
}
