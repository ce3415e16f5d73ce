package util

import (
	"bytes"
	"encoding/binary"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
)

//*******************************************
// binary io
//*******************************************

func NewBufferReader(data []byte) BufferReader {
	reader := bytes.NewReader(data)
	return BufferReader{
		reader: reader,
	}
}

type BufferReader struct {
	reader *bytes.Reader
}

func Read[T any](reader BufferReader) (T, error) {
	var value T
	err := binary.Read(reader.reader, binary.LittleEndian, &value)
	return value, err
}

func ReadArray[T any](reader BufferReader) (Array[T], error) {
	var size int32
	if err := binary.Read(reader.reader, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, fmt.Errorf("invalid array size %v", size)
	}
	value := NewArray[T](int(size))
	if err := binary.Read(reader.reader, binary.LittleEndian, &value); err != nil {
		return nil, err
	}
	return value, nil
}

func NewBufferWriter() BufferWriter {
	buffer := bytes.Buffer{}
	return BufferWriter{
		buffer: &buffer,
	}
}

type BufferWriter struct {
	buffer *bytes.Buffer
}

func (self *BufferWriter) Bytes() []byte {
	return self.buffer.Bytes()
}

func Write[T any](writer BufferWriter, value T) error {
	return binary.Write(writer.buffer, binary.LittleEndian, value)
}
func WriteArray[T any](writer BufferWriter, value Array[T]) error {
	if err := binary.Write(writer.buffer, binary.LittleEndian, int32(value.Length())); err != nil {
		return err
	}
	return binary.Write(writer.buffer, binary.LittleEndian, value)
}

//*******************************************
// file io
//*******************************************

func WriteArrayToFile[T any](value Array[T], file string) error {
	writer := NewBufferWriter()
	if err := WriteArray[T](writer, value); err != nil {
		return err
	}
	return os.WriteFile(file, writer.Bytes(), 0644)
}

func WriteJSONToFile[T any](value T, file string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}

func ReadArrayFromFile[T any](file string) (Array[T], error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	reader := NewBufferReader(data)
	return ReadArray[T](reader)
}

func ReadJSONFromFile[T any](file string) (T, error) {
	var value T
	data, err := os.ReadFile(file)
	if err != nil {
		return value, err
	}
	err = json.Unmarshal(data, &value)
	return value, err
}

//*******************************************
// csv
//*******************************************

// Reads rows of a delimited file into structs using their `csv` tags.
// Malformed rows are skipped.
func ReadCSVFromFile[T any](filename string, delimiter rune) (func(yield func(T) bool), error) {
	_, err := os.Stat(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("file not found: %v", filename)
	}
	if err != nil {
		return nil, err
	}
	return func(yield func(T) bool) {
		file, err := os.Open(filename)
		if err != nil {
			return
		}
		defer file.Close()
		ReadCSV[T](file, delimiter)(yield)
	}, nil
}

func ReadCSV[T any](r io.Reader, delimiter rune) func(yield func(T) bool) {
	return func(yield func(T) bool) {
		reader := csv.NewReader(r)
		reader.Comma = delimiter
		header, err := reader.Read()
		if err != nil {
			return
		}
		name_row_mapping := NewDict[string, int](10)
		for i, name := range header {
			name_row_mapping[name] = i
		}

		var val T
		typ := reflect.TypeOf(val)
		num_field := typ.NumField()
		fields := NewList[Triple[int, int, reflect.Kind]](num_field)
		for i := 0; i < num_field; i++ {
			field := typ.Field(i)
			tag := field.Tag.Get("csv")
			if tag == "" {
				continue
			}
			if !name_row_mapping.ContainsKey(tag) {
				continue
			}
			row := name_row_mapping[tag]
			switch field.Type.Kind() {
			case reflect.Bool:
				fields.Add(MakeTriple(i, row, reflect.Bool))
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				fields.Add(MakeTriple(i, row, reflect.Int))
			case reflect.Float32, reflect.Float64:
				fields.Add(MakeTriple(i, row, reflect.Float64))
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				fields.Add(MakeTriple(i, row, reflect.Uint))
			case reflect.String:
				fields.Add(MakeTriple(i, row, reflect.String))
			}
		}
		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			} else if err != nil {
				continue
			}
			t := reflect.New(typ).Elem()
			for _, field := range fields {
				index := field.A
				row := field.B
				typ := field.C
				if row >= len(record) {
					continue
				}
				value := record[row]
				if value == "" {
					continue
				}
				f := t.Field(index)
				switch typ {
				case reflect.Bool:
					num, _ := strconv.ParseBool(value)
					f.SetBool(num)
				case reflect.Int:
					num, _ := strconv.ParseInt(value, 10, 64)
					f.SetInt(num)
				case reflect.Uint:
					num, _ := strconv.ParseUint(value, 10, 64)
					f.SetUint(num)
				case reflect.Float64:
					num, _ := strconv.ParseFloat(value, 64)
					f.SetFloat(num)
				case reflect.String:
					f.SetString(value)
				}
			}
			value := t.Interface().(T)
			if !yield(value) {
				break
			}
		}
	}
}
