// Package transform renders book documents to annotated XHTML.
//
// Stylesheet evaluation is delegated to an [Engine]. The package resolves
// the stylesheet by name, parses the book (and optionally its Dublin Core
// section), hands both to the engine together with the extension
// [Functions] a stylesheet may call, and finally numbers the result and
// prepends a table of contents:
//
//	t := transform.New(engine, transform.WithStylesheet("full"))
//	res, err := t.TransformFile(ctx, "pan-tadeusz.xml")
//	if err != nil {
//	    return err
//	}
//	res.WriteTo(os.Stdout)
//
// A result without any paragraph is replaced by an <empty/> document.
package transform
