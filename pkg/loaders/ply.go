package loaders

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/golang/glog"
	"golang.org/x/xerrors"
)

// PLYData holds the vertices and faces of a PLY file
type PLYData struct {
	Vertices []core.Point
	Faces    [][3]int // Polygons with more than three corners are split into triangle fans
}

// plyHeader represents the parsed header information from a PLY file
type plyHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Elements []plyElement
}

type plyElement struct {
	Name  string
	Count int
	Props []plyProperty
}

// plyProperty represents a property definition in the PLY header
type plyProperty struct {
	Name      string
	Type      string // For list properties, the type of the entries
	IsList    bool
	CountType string // For list properties, the type of the count
}

// LoadPLY loads the vertices and faces of a PLY file
func LoadPLY(filename string) (*PLYData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, xerrors.Errorf("while opening PLY file: %w", err)
	}
	defer file.Close()

	data, err := ReadPLY(file)
	if err != nil {
		return nil, xerrors.Errorf("while reading PLY file %q: %w", filename, err)
	}

	glog.V(1).Infof("Loaded PLY data: %d vertices, %d triangles in %v",
		len(data.Vertices), len(data.Faces), time.Since(startTime))
	return data, nil
}

// ReadPLY parses PLY data in ascii or binary format
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReader(r)
	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, xerrors.Errorf("while parsing header: %w", err)
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		values = &asciiValueReader{scanner: scanner}
	case "binary_little_endian":
		values = &binaryValueReader{r: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValueReader{r: reader, order: binary.BigEndian}
	default:
		return nil, xerrors.Errorf("unsupported PLY format: %q", header.Format)
	}

	data := &PLYData{}
	for _, element := range header.Elements {
		var err error
		switch element.Name {
		case "vertex":
			err = readVertices(values, element, data)
		case "face":
			err = readFaces(values, element, data)
		default:
			err = skipElement(values, element)
		}
		if err != nil {
			return nil, xerrors.Errorf("while reading %s elements: %w", element.Name, err)
		}
	}

	for i, face := range data.Faces {
		for _, index := range face {
			if index < 0 || index >= len(data.Vertices) {
				return nil, xerrors.Errorf("face %d references vertex %d of %d", i, index, len(data.Vertices))
			}
		}
	}

	return data, nil
}

// parsePLYHeader parses the header up to and including the end_header line
func parsePLYHeader(reader *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, xerrors.New("missing ply magic number")
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, xerrors.Errorf("header ends without end_header: %w", err)
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, xerrors.Errorf("invalid format line %q", strings.TrimSpace(line))
			}
			header.Format = parts[1]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, xerrors.Errorf("invalid element line %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, xerrors.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, plyElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, xerrors.New("property before first element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current := &header.Elements[len(header.Elements)-1]
			current.Props = append(current.Props, prop)
		default:
			return nil, xerrors.Errorf("unknown header keyword %q", parts[0])
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) >= 1 && parts[0] == "list" {
		if len(parts) < 4 {
			return plyProperty{}, xerrors.New("invalid list property definition")
		}
		if plyTypeSize(parts[1]) == 0 || plyTypeSize(parts[2]) == 0 {
			return plyProperty{}, xerrors.Errorf("unknown type in list property %q", parts[3])
		}
		return plyProperty{Name: parts[3], Type: parts[2], IsList: true, CountType: parts[1]}, nil
	}

	if len(parts) < 2 {
		return plyProperty{}, xerrors.New("invalid property definition")
	}
	if plyTypeSize(parts[0]) == 0 {
		return plyProperty{}, xerrors.Errorf("unknown type %q of property %q", parts[0], parts[1])
	}
	return plyProperty{Name: parts[1], Type: parts[0]}, nil
}

func readVertices(values plyValueReader, element plyElement, data *PLYData) error {
	coord := [3]int{-1, -1, -1}
	for i, prop := range element.Props {
		switch prop.Name {
		case "x":
			coord[0] = i
		case "y":
			coord[1] = i
		case "z":
			coord[2] = i
		}
	}
	for _, index := range coord {
		if index < 0 || element.Props[index].IsList {
			return xerrors.New("vertices need scalar x, y and z properties")
		}
	}

	data.Vertices = make([]core.Point, 0, element.Count)
	row := make([]float64, len(element.Props))
	for n := 0; n < element.Count; n++ {
		for i, prop := range element.Props {
			if prop.IsList {
				if err := skipList(values, prop); err != nil {
					return err
				}
				continue
			}
			v, err := values.scalar(prop.Type)
			if err != nil {
				return xerrors.Errorf("vertex %d: %w", n, err)
			}
			row[i] = v
		}
		data.Vertices = append(data.Vertices, core.NewPoint(row[coord[0]], row[coord[1]], row[coord[2]]))
	}
	return nil
}

func readFaces(values plyValueReader, element plyElement, data *PLYData) error {
	indexProp := -1
	for i, prop := range element.Props {
		if prop.IsList && (prop.Name == "vertex_indices" || prop.Name == "vertex_index") {
			indexProp = i
		}
	}
	if indexProp < 0 {
		return xerrors.New("faces need a vertex_indices list property")
	}

	data.Faces = make([][3]int, 0, element.Count)
	for n := 0; n < element.Count; n++ {
		for i, prop := range element.Props {
			if i != indexProp {
				if err := skipProperty(values, prop); err != nil {
					return xerrors.Errorf("face %d: %w", n, err)
				}
				continue
			}

			indices, err := readList(values, prop)
			if err != nil {
				return xerrors.Errorf("face %d: %w", n, err)
			}
			if len(indices) < 3 {
				return xerrors.Errorf("face %d has %d vertices", n, len(indices))
			}
			for k := 1; k+1 < len(indices); k++ {
				data.Faces = append(data.Faces, [3]int{int(indices[0]), int(indices[k]), int(indices[k+1])})
			}
		}
	}
	return nil
}

func skipElement(values plyValueReader, element plyElement) error {
	for n := 0; n < element.Count; n++ {
		for _, prop := range element.Props {
			if err := skipProperty(values, prop); err != nil {
				return err
			}
		}
	}
	return nil
}

func skipProperty(values plyValueReader, prop plyProperty) error {
	if prop.IsList {
		return skipList(values, prop)
	}
	_, err := values.scalar(prop.Type)
	return err
}

func skipList(values plyValueReader, prop plyProperty) error {
	_, err := readList(values, prop)
	return err
}

func readList(values plyValueReader, prop plyProperty) ([]float64, error) {
	count, err := values.scalar(prop.CountType)
	if err != nil {
		return nil, err
	}
	if count < 0 || count != math.Trunc(count) {
		return nil, xerrors.Errorf("invalid list length %g", count)
	}
	list := make([]float64, int(count))
	for i := range list {
		if list[i], err = values.scalar(prop.Type); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// plyTypeSize returns the size in bytes of a PLY scalar type, or 0 for unknown types
func plyTypeSize(dataType string) int {
	switch dataType {
	case "char", "uchar", "int8", "uint8":
		return 1
	case "short", "ushort", "int16", "uint16":
		return 2
	case "int", "uint", "float", "int32", "uint32", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

type plyValueReader interface {
	scalar(dataType string) (float64, error)
}

type asciiValueReader struct {
	scanner *bufio.Scanner
}

func (a *asciiValueReader) scalar(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	v, err := strconv.ParseFloat(a.scanner.Text(), 64)
	if err != nil {
		return 0, xerrors.Errorf("invalid %s value %q", dataType, a.scanner.Text())
	}
	return v, nil
}

type binaryValueReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryValueReader) scalar(dataType string) (float64, error) {
	size := plyTypeSize(dataType)
	if size == 0 {
		return 0, xerrors.Errorf("unknown type %q", dataType)
	}
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.r, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default:
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}
