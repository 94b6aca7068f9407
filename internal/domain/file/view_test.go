package file

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testFiles() []*File {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []*File{
		{ID: "1", Name: "Report.pdf", UploadedAt: base},
		{ID: "2", Name: "holiday.jpg", Starred: true, UploadedAt: base.Add(-time.Hour)},
		{ID: "3", Name: "old-report.pdf", Trashed: true, UploadedAt: base.Add(-2 * time.Hour)},
		{ID: "4", Name: "notes.txt", Starred: true, Trashed: true, UploadedAt: base.Add(-3 * time.Hour)},
	}
}

func ids(files []*File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.ID)
	}
	return out
}

func TestSelectVisible_MyDrive(t *testing.T) {
	visible := SelectVisible(testFiles(), "", ViewMyDrive)
	assert.Equal(t, []string{"1", "2"}, ids(visible))
}

func TestSelectVisible_TrashShowsOnlyTrashed(t *testing.T) {
	visible := SelectVisible(testFiles(), "", ViewTrash)
	assert.Equal(t, []string{"3", "4"}, ids(visible))
}

func TestSelectVisible_TrashedNeverLeaksOutsideTrash(t *testing.T) {
	for _, view := range []View{ViewMyDrive, ViewRecent, ViewStarred} {
		for _, f := range SelectVisible(testFiles(), "", view) {
			assert.False(t, f.Trashed, "view %s leaked trashed file %s", view, f.ID)
		}
	}
}

func TestSelectVisible_StarredExcludesTrashedStar(t *testing.T) {
	// File 4 is starred AND trashed; the starred view must not show it.
	visible := SelectVisible(testFiles(), "", ViewStarred)
	assert.Equal(t, []string{"2"}, ids(visible))
}

func TestSelectVisible_RecentShowsAllNonTrashed(t *testing.T) {
	visible := SelectVisible(testFiles(), "", ViewRecent)
	assert.Equal(t, []string{"1", "2"}, ids(visible))
}

func TestSelectVisible_SearchIsCaseInsensitive(t *testing.T) {
	visible := SelectVisible(testFiles(), "REPORT", ViewMyDrive)
	assert.Equal(t, []string{"1"}, ids(visible))
}

func TestSelectVisible_SearchAppliesInsideTrash(t *testing.T) {
	visible := SelectVisible(testFiles(), "report", ViewTrash)
	assert.Equal(t, []string{"3"}, ids(visible))
}

func TestSelectVisible_WhitespaceSearchIsNoFilter(t *testing.T) {
	assert.Equal(t,
		ids(SelectVisible(testFiles(), "", ViewMyDrive)),
		ids(SelectVisible(testFiles(), "   ", ViewMyDrive)))
}

func TestSelectVisible_SearchTermIsTrimmed(t *testing.T) {
	visible := SelectVisible(testFiles(), "  holiday  ", ViewMyDrive)
	assert.Equal(t, []string{"2"}, ids(visible))
}

func TestSelectVisible_PreservesInputOrder(t *testing.T) {
	visible := SelectVisible(testFiles(), "", ViewMyDrive)
	assert.True(t, visible[0].UploadedAt.After(visible[1].UploadedAt))
}

func TestSelectVisible_EmptyCollection(t *testing.T) {
	assert.Empty(t, SelectVisible(nil, "anything", ViewTrash))
}

func TestParseView(t *testing.T) {
	assert.Equal(t, ViewTrash, ParseView("trash"))
	assert.Equal(t, ViewStarred, ParseView("starred"))
	assert.Equal(t, ViewRecent, ParseView("recent"))
	assert.Equal(t, ViewMyDrive, ParseView("my-drive"))
	assert.Equal(t, ViewMyDrive, ParseView(""))
	assert.Equal(t, ViewMyDrive, ParseView("bogus"))
}
