// Package annotate adds navigation aids to a transformed book tree.
//
// [AddAnchors] numbers verses and paragraphs, linking every fifth verse line
// and every paragraph:
//
//	<p class="verse"><a name="f5" class="target"> </a><a href="#f5" class="anchor">5</a>line</p>
//
// [AddTableOfContents] gives every h2 and h3 heading a target anchor and
// prepends a "toc" block linking to them. Both functions mutate the tree
// they are given and must not run concurrently on the same tree.
package annotate
