package usecase

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

const MatchingResultPrefix = "matching:result:"

// MatchingResultPattern matches every cached matching result.
const MatchingResultPattern = MatchingResultPrefix + "*"

// MatchingKey identifies one cached matching computation. Two requests share a
// key only when every input that can change the output is equal.
type MatchingKey struct {
	ProjectID    uuid.UUID
	Mode         string
	Skill        float64
	Experience   float64
	Availability float64
	DataVersion  string
	Day          string
	Department   string
	Limit        int
	MinScore     float64
}

func (k MatchingKey) String() string {
	var b strings.Builder
	b.WriteString(k.Mode)
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(k.Skill, 'g', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(k.Experience, 'g', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(k.Availability, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(k.DataVersion)
	b.WriteByte('|')
	b.WriteString(k.Day)
	b.WriteByte('|')
	b.WriteString(strings.ToLower(strings.TrimSpace(k.Department)))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(k.Limit))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(k.MinScore, 'g', -1, 64))

	return MatchingResultPrefix + k.ProjectID.String() + ":" + strconv.FormatUint(xxhash.Sum64String(b.String()), 16)
}
