package dublincore

// Schema lists the fields of a book record in serialisation order.
var Schema = []Field{
	NewField(DC("creator"), "author", WithValidator(AsPerson)),
	NewField(DC("title"), "title"),
	NewField(DC("subject.period"), "epochs", Multiple(), WithAlias("epoch")),
	NewField(DC("subject.type"), "kinds", Multiple(), WithAlias("kind")),
	NewField(DC("subject.genre"), "genres", Multiple(), WithAlias("genre")),
	NewField(DC("date"), "created_at", WithValidator(AsDate)),
	NewField(DC("date.pd"), "released_to_public_domain_at", WithValidator(AsDate), Optional()),
	NewField(DC("contributor.editor"), "editors",
		WithValidator(AsPerson), Multiple(), WithAlias("editor"), WithDefault()),
	NewField(DC("contributor.translator"), "translators",
		WithValidator(AsPerson), Multiple(), WithAlias("translator"), WithDefault()),
	NewField(DC("contributor.technical_editor"), "technical_editors",
		WithValidator(AsPerson), Multiple(), WithAlias("technical_editor"), WithDefault()),
	NewField(DC("publisher"), "publisher"),
	NewField(DC("source"), "source_name", Optional()),
	NewField(DC("source.URL"), "source_url", Optional()),
	NewField(DC("identifier.url"), "url"),
	NewField(DC("relation.hasPart"), "parts", Multiple(), Optional()),
	NewField(DC("rights.license"), "license", Optional()),
	NewField(DC("rights"), "license_description"),
}

// schemaIndex maps primary names and singular aliases to schema positions.
var schemaIndex = func() map[string]int {
	idx := make(map[string]int, len(Schema)*2)
	for i, f := range Schema {
		idx[f.Name] = i
		if f.SingularAlias != "" {
			idx[f.SingularAlias] = i
		}
	}
	return idx
}()

// Lookup returns the field answering to name, which may be a primary name or
// a singular alias.
func Lookup(name string) (Field, bool) {
	i, ok := schemaIndex[name]
	if !ok {
		return Field{}, false
	}
	return Schema[i], true
}
