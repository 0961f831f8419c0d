// Package fragments extracts thematic fragments from a transformed book.
//
// A fragment is the stretch of text between a theme-begin marker and the
// theme-end marker sharing its fid attribute:
//
//	<div id="book-text">
//	  <p>A<span class="theme-begin" fid="1">Love</span>B<span class="theme-end" fid="1"/>C</p>
//	</div>
//
// Extraction runs in two phases. A [Tracker] consumes start/end events in
// document order and records immutable element snapshots into every open
// fragment; fragments may overlap. [ClosedEvents] and [Render] then replay
// a fragment's events through a stack so the result is balanced markup even
// when the fragment began or ended in the middle of an element:
//
//	res, err := fragments.Extract(f)
//	for _, frag := range res.Closed {
//	    text, warnings := fragments.Render(frag)
//	    ...
//	}
//
// End markers without a matching begin marker, and closing events without a
// matching opening event, are reported as [Warning] values and never abort
// extraction.
package fragments
