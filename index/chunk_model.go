package index

import (
	"github.com/SaiNageswarS/go-api-boot/odm"
)

// ChunkModel is one pre-embedded slice of a subject's textbook. Each
// subject lives in its own tenant database, mirroring one loadable
// index per subject key.
type ChunkModel struct {
	ChunkID     string `json:"chunkId" bson:"_id"`
	Title       string `json:"title" bson:"title"`
	SectionPath string `json:"sectionPath" bson:"sectionPath"`
	SourceURI   string `json:"sourceUri" bson:"sourceUri"`
	Body        string `json:"body" bson:"body"`
}

func (m ChunkModel) Id() string { return m.ChunkID }

func (m ChunkModel) CollectionName() string { return "chunks" }

// Indexes
func (m ChunkModel) TermSearchIndexSpecs() []odm.TermSearchIndexSpec {
	return []odm.TermSearchIndexSpec{
		{
			Name:  "chunkIndex",
			Paths: []string{"body", "sectionPath", "title"},
		},
	}
}
