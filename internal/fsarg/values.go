package fsarg

import (
	"os"

	"github.com/zclconf/go-cty/cty"
)

// FileVal wraps an opened file as a cty value.
func FileVal(f *os.File) cty.Value {
	return cty.CapsuleVal(FileType, f)
}

// DirectoryVal wraps a directory descriptor as a cty value.
func DirectoryVal(d *Directory) cty.Value {
	return cty.CapsuleVal(DirectoryType, d)
}

// AsFile unwraps a FileType value. It returns nil for null, unknown or
// differently typed values.
func AsFile(v cty.Value) *os.File {
	if v.IsNull() || !v.IsKnown() || !v.Type().Equals(FileType) {
		return nil
	}
	return v.EncapsulatedValue().(*os.File)
}

// AsDirectory unwraps a DirectoryType value. It returns nil for null, unknown
// or differently typed values.
func AsDirectory(v cty.Value) *Directory {
	if v.IsNull() || !v.IsKnown() || !v.Type().Equals(DirectoryType) {
		return nil
	}
	return v.EncapsulatedValue().(*Directory)
}

// CloseAll closes every file among values. Errors are ignored; this is used
// to release handles when validation fails after some files were opened.
func CloseAll(values ...cty.Value) {
	for _, v := range values {
		if f := AsFile(v); f != nil {
			_ = f.Close()
		}
	}
}
