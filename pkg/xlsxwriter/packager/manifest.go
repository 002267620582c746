package packager

import (
	"fmt"
	"path"
	"strings"

	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/xmlwriter"
)

// Relationship links a source part to a target part.
type Relationship struct {
	ID     string
	Type   string
	Target string
}

// Relationships is the ordered relationship set of one source part.
// Ids are assigned sequentially as rId1, rId2, ...
type Relationships struct {
	rels []Relationship
}

// Add appends a relationship and returns its id.
func (r *Relationships) Add(relType, target string) string {
	id := fmt.Sprintf("rId%d", len(r.rels)+1)
	r.rels = append(r.rels, Relationship{ID: id, Type: relType, Target: target})
	return id
}

// Len returns the number of relationships.
func (r *Relationships) Len() int {
	return len(r.rels)
}

// All returns the relationships in insertion order.
func (r *Relationships) All() []Relationship {
	out := make([]Relationship, len(r.rels))
	copy(out, r.rels)
	return out
}

// Bytes serializes the relationship part.
func (r *Relationships) Bytes() []byte {
	w := xmlwriter.New()
	w.Declaration()
	w.Start("Relationships", xmlwriter.A("xmlns", NSPackageRels))
	for _, rel := range r.rels {
		w.Empty("Relationship",
			xmlwriter.A("Id", rel.ID),
			xmlwriter.A("Type", rel.Type),
			xmlwriter.A("Target", rel.Target),
		)
	}
	w.End("Relationships")
	return w.Bytes()
}

// RelsPartName returns the relationship part name for a source part,
// e.g. "xl/workbook.xml" -> "xl/_rels/workbook.xml.rels".
func RelsPartName(source string) string {
	dir, file := path.Split(source)
	return dir + "_rels/" + file + ".rels"
}

type contentType struct {
	key   string
	value string
}

// ContentTypes is the [Content_Types].xml manifest.
type ContentTypes struct {
	defaults  []contentType
	overrides []contentType
}

// NewContentTypes returns a manifest with the rels and xml defaults registered.
func NewContentTypes() *ContentTypes {
	ct := &ContentTypes{}
	ct.AddDefault("rels", ContentTypeRels)
	ct.AddDefault("xml", ContentTypeXML)
	return ct
}

// AddDefault registers a content type for a file extension.
func (c *ContentTypes) AddDefault(ext, ctype string) {
	for _, d := range c.defaults {
		if d.key == ext {
			return
		}
	}
	c.defaults = append(c.defaults, contentType{key: ext, value: ctype})
}

// AddOverride registers a content type for a single part.
func (c *ContentTypes) AddOverride(partName, ctype string) {
	if !strings.HasPrefix(partName, "/") {
		partName = "/" + partName
	}
	c.overrides = append(c.overrides, contentType{key: partName, value: ctype})
}

// Override returns the content type registered for a part.
func (c *ContentTypes) Override(partName string) (string, bool) {
	if !strings.HasPrefix(partName, "/") {
		partName = "/" + partName
	}
	for _, o := range c.overrides {
		if o.key == partName {
			return o.value, true
		}
	}
	return "", false
}

// Bytes serializes the manifest.
func (c *ContentTypes) Bytes() []byte {
	w := xmlwriter.New()
	w.Declaration()
	w.Start("Types", xmlwriter.A("xmlns", NSContentTypes))
	for _, d := range c.defaults {
		w.Empty("Default", xmlwriter.A("Extension", d.key), xmlwriter.A("ContentType", d.value))
	}
	for _, o := range c.overrides {
		w.Empty("Override", xmlwriter.A("PartName", o.key), xmlwriter.A("ContentType", o.value))
	}
	w.End("Types")
	return w.Bytes()
}
