package filesystem

import (
	"io/fs"
)

// Op names an FS operation for fault injection.
type Op string

const (
	OpStat      Op = "stat"
	OpLstat     Op = "lstat"
	OpMkdirAll  Op = "mkdirall"
	OpReadDir   Op = "readdir"
	OpSymlink   Op = "symlink"
	OpRemove    Op = "remove"
	OpRemoveAll Op = "removeall"
	OpWriteFile Op = "writefile"
	OpRename    Op = "rename"
)

// Faulty wraps an FS and fails selected operations. A fault matches when
// its Op matches and Path is empty or equal to the operation's path.
type Faulty struct {
	FS
	Faults []Fault
}

// Fault is one injected failure.
type Fault struct {
	Op   Op
	Path string
	Err  error
}

// NewFaulty wraps base with the given faults.
func NewFaulty(base FS, faults ...Fault) *Faulty {
	return &Faulty{FS: base, Faults: faults}
}

func (f *Faulty) fault(op Op, path string) error {
	for _, flt := range f.Faults {
		if flt.Op == op && (flt.Path == "" || flt.Path == path) {
			return &fs.PathError{Op: string(op), Path: path, Err: flt.Err}
		}
	}
	return nil
}

func (f *Faulty) Stat(name string) (fs.FileInfo, error) {
	if err := f.fault(OpStat, name); err != nil {
		return nil, err
	}
	return f.FS.Stat(name)
}

func (f *Faulty) Lstat(name string) (fs.FileInfo, error) {
	if err := f.fault(OpLstat, name); err != nil {
		return nil, err
	}
	return f.FS.Lstat(name)
}

func (f *Faulty) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.fault(OpMkdirAll, path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *Faulty) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := f.fault(OpReadDir, name); err != nil {
		return nil, err
	}
	return f.FS.ReadDir(name)
}

func (f *Faulty) Symlink(oldname, newname string) error {
	if err := f.fault(OpSymlink, newname); err != nil {
		return err
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *Faulty) Remove(name string) error {
	if err := f.fault(OpRemove, name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

func (f *Faulty) RemoveAll(path string) error {
	if err := f.fault(OpRemoveAll, path); err != nil {
		return err
	}
	return f.FS.RemoveAll(path)
}

func (f *Faulty) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.fault(OpWriteFile, name); err != nil {
		return err
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *Faulty) Rename(oldpath, newpath string) error {
	if err := f.fault(OpRename, newpath); err != nil {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}
