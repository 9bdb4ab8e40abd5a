// Package export writes the workbench's last rendered output (a dump,
// disasm, or vft listing) to disk atomically, the same temp-file-plus-
// rename approach [github.com/binpatch/orw/internal/fs] uses elsewhere.
package export

import (
	"path/filepath"

	"github.com/binpatch/orw/internal/fs"
)

// Write writes content to dir/name (or just name if dir is empty or name
// is absolute) and returns the path written.
func Write(fsys fs.FS, dir, name, content string) (string, error) {
	path := name
	if dir != "" && !filepath.IsAbs(name) {
		path = filepath.Join(dir, name)
	}

	if err := fsys.WriteFileAtomic(path, []byte(content), 0o644); err != nil {
		return "", err
	}

	return path, nil
}
