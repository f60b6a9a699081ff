package linecat

import "strings"

// Category is the coarse classification of a changed path, used for
// downstream analytics grouping.
type Category string

const (
	// CategoryTest marks paths that contain the substring "test".
	CategoryTest Category = "test"
	// CategoryDefault marks everything else.
	CategoryDefault Category = "default"
)

// Change is one emitted record: the stats for one file touched by one commit,
// decorated with its category and extension.
type Change struct {
	Repo      string   `json:"repo"`
	Sha       string   `json:"sha"`
	Author    string   `json:"author"`
	Timestamp string   `json:"timestamp"`
	Path      string   `json:"path"`
	Ext       string   `json:"ext,omitempty"`
	Category  Category `json:"category"`
	Additions uint64   `json:"additions"`
	Deletions uint64   `json:"deletions"`
}

// Categorize classifies a path. The check is a plain substring match, so
// "contest/foo.rs" also counts as test.
func Categorize(path string) Category {
	if strings.Contains(path, "test") {
		return CategoryTest
	}

	return CategoryDefault
}

// Extension returns the extension of the last path component, without the
// dot. Dotfiles such as ".gitignore" have no extension, and neither do
// components without a dot. The empty string means no extension.
func Extension(path string) string {
	base := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		base = path[i+1:]
	}

	dot := strings.LastIndexByte(base, '.')
	if dot <= 0 {
		return ""
	}

	return base[dot+1:]
}

// NewChange assembles a change record from the header currently in effect and
// one parsed numstat line.
func NewChange(repo string, header Header, stat PathStat) Change {
	return Change{
		Repo:      repo,
		Sha:       header.Sha,
		Author:    header.Author,
		Timestamp: header.Timestamp,
		Path:      stat.Path,
		Ext:       Extension(stat.Path),
		Category:  Categorize(stat.Path),
		Additions: stat.Additions,
		Deletions: stat.Deletions,
	}
}
