package svgpath

import (
	"bytes"
	"errors"
	"io"

	"github.com/npillmayer/epicycles"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
	"honnef.co/go/curve"
)

// ReadDocument reads a vector graphics document and returns the parsed
// "d" attributes of all of its path elements, in document order. Other
// shapes and transform attributes are ignored. Path elements with empty
// path data are skipped.
func ReadDocument(r io.Reader) ([]curve.BezPath, error) {
	lexer := xml.NewLexer(parse.NewInput(r))
	var paths []curve.BezPath
	inPath := false
	for {
		tt, _ := lexer.Next()
		switch tt {
		case xml.ErrorToken:
			if err := lexer.Err(); !errors.Is(err, io.EOF) {
				return nil, &epicycles.InvalidPathError{Reason: "cannot read document", Err: err}
			}
			tracer().Debugf("document contains %d paths", len(paths))
			return paths, nil
		case xml.StartTagToken:
			inPath = string(localName(lexer.Text())) == "path"
		case xml.StartTagCloseToken, xml.StartTagCloseVoidToken:
			inPath = false
		case xml.AttributeToken:
			if !inPath || !bytes.Equal(localName(lexer.Text()), []byte("d")) {
				continue
			}
			p, err := ParsePathData(string(unquote(lexer.AttrVal())))
			if err != nil {
				return nil, err
			}
			if len(p) > 0 {
				paths = append(paths, p)
			}
		}
	}
}

func localName(name []byte) []byte {
	if i := bytes.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func unquote(val []byte) []byte {
	if n := len(val); n >= 2 && (val[0] == '"' || val[0] == '\'') && val[n-1] == val[0] {
		return val[1 : n-1]
	}
	return val
}
