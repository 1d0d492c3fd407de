// Package paf parses and filters the PAF (Pairwise mApping Format) records
// emitted by the native aligner, per the mapping result layout minimap2
// documents at https://lh3.github.io/minimap2/minimap2.html.
package paf

import (
	"strconv"
	"strings"

	"github.com/mbhall88/lrge/errs"
)

// Tag is one optional "name:type:value" triple trailing a PAF record.
type Tag struct {
	Name  string
	Type  byte
	Value string
}

// Record is a single PAF line: the 12 mandatory fields plus whichever
// optional tags minimap2 emitted. Only the dv tag has a named accessor
// (DV); any tag can be looked up by name with Tag.
type Record struct {
	QueryName   string
	QueryLen    int
	QueryStart  int
	QueryEnd    int
	Strand      byte
	TargetName  string
	TargetLen   int
	TargetStart int
	TargetEnd   int
	MatchLen    int
	BlockLen    int
	MapQ        int
	Tags        []Tag
}

// Parse decodes a single tab-separated PAF line.
func Parse(line string) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 12 {
		return Record{}, errs.New(errs.InvalidRecord, "PAF record has %d fields, need at least 12", len(fields))
	}

	r := Record{QueryName: fields[0], TargetName: fields[5]}

	ints := [...]*int{
		&r.QueryLen, &r.QueryStart, &r.QueryEnd,
	}
	for i, p := range ints {
		v, err := strconv.Atoi(fields[1+i])
		if err != nil {
			return Record{}, errs.Wrap(errs.InvalidRecord, err, "parsing PAF field %d", 1+i)
		}
		*p = v
	}

	if len(fields[4]) != 1 || (fields[4][0] != '+' && fields[4][0] != '-') {
		return Record{}, errs.New(errs.InvalidRecord, "invalid PAF strand field %q", fields[4])
	}
	r.Strand = fields[4][0]

	rest := [...]*int{
		&r.TargetLen, &r.TargetStart, &r.TargetEnd, &r.MatchLen, &r.BlockLen, &r.MapQ,
	}
	for i, p := range rest {
		v, err := strconv.Atoi(fields[6+i])
		if err != nil {
			return Record{}, errs.Wrap(errs.InvalidRecord, err, "parsing PAF field %d", 6+i)
		}
		*p = v
	}

	for _, f := range fields[12:] {
		if f == "" {
			continue
		}
		parts := strings.SplitN(f, ":", 3)
		if len(parts) != 3 || len(parts[1]) != 1 {
			return Record{}, errs.New(errs.InvalidRecord, "malformed PAF tag %q", f)
		}
		r.Tags = append(r.Tags, Tag{Name: parts[0], Type: parts[1][0], Value: parts[2]})
	}

	return r, nil
}

// Tag looks up an optional tag by name, reporting whether it was present.
func (r Record) Tag(name string) (string, bool) {
	for _, t := range r.Tags {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// DV returns the dv:f approximate per-base divergence tag, or 0 if absent.
func (r Record) DV() float64 {
	v, ok := r.Tag("dv")
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
