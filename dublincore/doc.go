// Package dublincore reads, validates and writes the Dublin Core metadata
// section embedded in book documents.
//
// A book carries its metadata as an RDF description:
//
//	<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
//	         xmlns:dc="http://purl.org/dc/elements/1.1/">
//	  <rdf:Description rdf:about="http://example.org/lektura/pan-tadeusz">
//	    <dc:creator>Mickiewicz, Adam</dc:creator>
//	    <dc:title>Pan Tadeusz</dc:title>
//	    ...
//	  </rdf:Description>
//	</rdf:RDF>
//
// Every recognised element is described by a [Field] in [Schema]. Parsing
// builds a [Record]:
//
//	rec, err := dublincore.FromFile("pan-tadeusz.xml")
//	if errors.Is(err, dublincore.ErrNoMetadataSection) {
//	    // the document has no RDF section
//	}
//	fmt.Println(rec.Author(), rec.Title())
//
// # Errors
//
// Three failure conditions are reported:
//
//   - [ErrNoMetadataSection] when no rdf:RDF or rdf:Description is present
//   - [*ValidationError] when a field is missing, repeated or malformed
//   - [*ParseError] when the input is not well-formed XML
//
// # Aliases
//
// Multi-valued fields such as "epochs" also answer to a singular alias
// ("epoch") that reads the first value and writes a one-element list. Use
// [Record.Get] and [Record.Set] for name based access.
package dublincore
