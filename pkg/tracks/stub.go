package tracks

import (
	"bufio"
	"os"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

//WriteStub serializes v (usually a *Table) to path so a later run can skip the tracker
func WriteStub(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "WriteStub: could not create '%s'", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := msgpack.NewEncoder(w).Encode(v); err != nil {
		return errors.Wrapf(err, "WriteStub: could not encode '%s'", path)
	}

	return w.Flush()
}

//ReadStub decodes a stub written by WriteStub into v
func ReadStub(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "ReadStub: could not open '%s'", path)
	}
	defer f.Close()

	if err := msgpack.NewDecoder(bufio.NewReader(f)).Decode(v); err != nil {
		return errors.Wrapf(err, "ReadStub: could not decode '%s'", path)
	}

	return nil
}

//LoadTable reads a *Table stub
func LoadTable(path string) (*Table, error) {
	t := NewTable()
	if err := ReadStub(path, t); err != nil {
		return nil, err
	}
	return t, nil
}
