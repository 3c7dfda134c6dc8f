// Package mocks holds testify mocks of the ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"nosqlkit.app/internal/ports"
)

// DocumentCollection is a mock of ports.DocumentCollection
type DocumentCollection struct {
	mock.Mock
}

// NewDocumentCollection creates a mock that asserts its expectations on cleanup
func NewDocumentCollection(t interface {
	mock.TestingT
	Cleanup(func())
}) *DocumentCollection {
	m := &DocumentCollection{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *DocumentCollection) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *DocumentCollection) Find(ctx context.Context, filter ports.Filter) ([]ports.Document, error) {
	args := m.Called(ctx, filter)
	docs, _ := args.Get(0).([]ports.Document)
	return docs, args.Error(1)
}

func (m *DocumentCollection) InsertOne(ctx context.Context, doc ports.Document) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

func (m *DocumentCollection) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
