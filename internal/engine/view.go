package engine

import "github.com/binpatch/orw/internal/bytepattern"

// Bookmark is a named offset, added via the label command. Bookmarks are
// session-only: nothing persists them across process restarts.
type Bookmark struct {
	Offset uint64
	Label  string
}

// PatchTemplate is a named (offset, bytes) pair saved via savetpl and
// replayed via applytpl, optionally at a different offset.
type PatchTemplate struct {
	Name   string
	Offset uint64
	Bytes  []byte
}

// ViewState is the session state layered on top of a loaded file: the
// current page, bookmarks, saved templates, and where the last search
// left off so findnext can resume. None of it survives a reload or a
// process restart.
type ViewState struct {
	PageOffset uint64

	Bookmarks []Bookmark
	Templates []PatchTemplate

	haveLastFind   bool
	lastFindOffset uint64
	lastPattern    bytepattern.Pattern
}

// SetPageForOffset snaps off down to the start of the page containing it.
func (v *ViewState) SetPageForOffset(off uint64) {
	v.PageOffset = (off / PageSize) * PageSize
}

// AddBookmark appends a new bookmark. Existing bookmarks with the same
// label are kept; labels are not unique keys.
func (v *ViewState) AddBookmark(off uint64, label string) {
	v.Bookmarks = append(v.Bookmarks, Bookmark{Offset: off, Label: label})
}

// SaveTemplate upserts a template by name.
func (v *ViewState) SaveTemplate(name string, off uint64, data []byte) {
	for i := range v.Templates {
		if v.Templates[i].Name == name {
			v.Templates[i].Offset = off
			v.Templates[i].Bytes = data

			return
		}
	}

	v.Templates = append(v.Templates, PatchTemplate{Name: name, Offset: off, Bytes: data})
}

// Template looks up a saved template by name.
func (v *ViewState) Template(name string) (PatchTemplate, bool) {
	for _, t := range v.Templates {
		if t.Name == name {
			return t, true
		}
	}

	return PatchTemplate{}, false
}

// RememberFind records the offset and pattern of a successful find, so a
// later findnext can resume the scan one byte past it.
func (v *ViewState) RememberFind(off uint64, pat bytepattern.Pattern) {
	v.haveLastFind = true
	v.lastFindOffset = off
	v.lastPattern = pat
}

// ForgetFind clears resumable search state. Called after any patch: a
// resumed search over a buffer that just changed underneath it could
// resume from stale content.
func (v *ViewState) ForgetFind() {
	v.haveLastFind = false
}

// LastFind returns the offset and pattern of the last successful find.
func (v *ViewState) LastFind() (off uint64, pat bytepattern.Pattern, ok bool) {
	return v.lastFindOffset, v.lastPattern, v.haveLastFind
}
