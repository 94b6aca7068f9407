package file

import "strings"

// SelectVisible returns the subset of files a view displays, preserving input
// order (the repository already orders by uploaded_at DESC, so "recent" needs
// no extra work here).
//
// Precedence: the free-text search is applied first, case-insensitively
// against the name. The trash view then shows trashed files only and ignores
// every other rule. Outside the trash view trashed files never appear.
// Starred keeps only starred files; recent and my-drive keep the rest.
func SelectVisible(files []*File, search string, view View) []*File {
	term := strings.ToLower(strings.TrimSpace(search))

	visible := make([]*File, 0, len(files))
	for _, f := range files {
		if term != "" && !strings.Contains(strings.ToLower(f.Name), term) {
			continue
		}
		if view == ViewTrash {
			if f.Trashed {
				visible = append(visible, f)
			}
			continue
		}
		if f.Trashed {
			continue
		}
		if view == ViewStarred && !f.Starred {
			continue
		}
		visible = append(visible, f)
	}
	return visible
}
