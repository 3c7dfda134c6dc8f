package school

import (
	"fmt"
	"strings"

	"nosqlkit.app/internal/ports"
)

// Field names of a school document
const (
	FieldName    = "name"
	FieldAddress = "address"
	FieldTopics  = "topics"
)

// School is a typed view of a school document
type School struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address,omitempty"`
	Topics  []string `json:"topics"`
}

// SchoolFromDocument reads the known school fields of doc.
// Missing fields stay empty and unknown fields are ignored.
func SchoolFromDocument(doc ports.Document) School {
	school := School{
		ID:      stringField(doc, ports.IDField),
		Name:    stringField(doc, FieldName),
		Address: stringField(doc, FieldAddress),
		Topics:  []string{},
	}

	switch topics := doc[FieldTopics].(type) {
	case []string:
		school.Topics = append(school.Topics, topics...)
	case []interface{}:
		for _, topic := range topics {
			if s, ok := topic.(string); ok {
				school.Topics = append(school.Topics, s)
			}
		}
	case string:
		school.Topics = append(school.Topics, topics)
	}

	return school
}

// HasTopic reports whether topic is one of the school topics
func (s School) HasTopic(topic string) bool {
	for _, t := range s.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// String renders the school the way listings print it
func (s School) String() string {
	return fmt.Sprintf("[%s] %s %s", s.ID, s.Name, strings.Join(s.Topics, ","))
}

func stringField(doc ports.Document, field string) string {
	switch v := doc[field].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
