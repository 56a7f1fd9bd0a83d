package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbowie/NotenikLib-sub002/internal/lineio"
	"github.com/hbowie/NotenikLib-sub002/internal/parser"
	"github.com/hbowie/NotenikLib-sub002/internal/schema"
)

// stdinArg names standard input as a note file.
const stdinArg = "-"

// noteFile is a note read from disk together with the collection its
// labels were resolved against.
type noteFile struct {
	Path   string
	Coll   *schema.Collection
	Result *parser.Result
}

// cliError carries the structured error code for a failure.
type cliError struct {
	code       string
	err        error
	suggestion string
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

// report hands err to handleError with its code.
func report(err error) error {
	var ce *cliError
	if errors.As(err, &ce) {
		return handleError(ce.code, ce.err, ce.suggestion)
	}
	return handleError(ErrInternal, err, "")
}

// fileError classifies a read or write failure on path.
func fileError(path string, err error, fallback string) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &cliError{code: ErrFileNotFound, err: fmt.Errorf("file not found: %s", path), suggestion: "Check the path and try again"}
	}
	return &cliError{code: fallback, err: err}
}

// loadCollection builds the collection for notes in dir: the field schema
// file first, then the template, then the lock.
func loadCollection(dir string) (*schema.Collection, error) {
	c := getConfig()
	name := filepath.Base(dir)

	fieldsPath := c.FieldsPath(dir)
	if fieldsFlag != "" {
		fieldsPath = fieldsFlag
		if _, err := os.Stat(fieldsPath); err != nil {
			return nil, fileError(fieldsPath, err, ErrFileReadError)
		}
	}
	coll, err := schema.LoadFieldsFile(fieldsPath, name)
	if err != nil {
		return nil, &cliError{code: ErrSchemaInvalid, err: err, suggestion: "Fix the fields file or pass --fields"}
	}

	lock := lockFlag || c.LockAfterTemplate
	templatePath := c.TemplatePath(dir)
	explicit := templateFlag != ""
	if explicit {
		templatePath = templateFlag
	}

	if _, err := os.Stat(templatePath); err == nil {
		_, err := parser.LoadTemplate(coll, lineio.NewFileSource(templatePath), parser.BootstrapOptions{Lock: lock})
		if err != nil {
			return nil, &cliError{code: ErrSchemaInvalid, err: fmt.Errorf("template %s: %w", templatePath, err)}
		}
	} else if explicit {
		return nil, fileError(templatePath, err, ErrFileReadError)
	}

	if lockFlag {
		coll.Dict.Lock()
	}
	return coll, nil
}

// readNote parses the note at path, or standard input for "-".
func readNote(path string) (*noteFile, error) {
	dir, fallback := ".", ""
	var src lineio.Source = lineio.NewReaderSource(os.Stdin)
	if path != stdinArg {
		dir = filepath.Dir(path)
		fallback = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		src = lineio.NewFileSource(path)
	}

	coll, err := loadCollection(dir)
	if err != nil {
		return nil, err
	}

	res, err := parser.New(coll).Parse(src, fallback)
	if err != nil {
		return nil, fileError(path, err, ErrFileReadError)
	}
	return &noteFile{Path: path, Coll: coll, Result: res}, nil
}
