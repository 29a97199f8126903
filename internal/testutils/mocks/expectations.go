// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
	"go.uber.org/mock/gomock"

	rpgtoolkitmock "github.com/KirkDiggler/coc-api/internal/engine/rpgtoolkit/mock"
)

// ExpectPublish expects one event of the given type and returns the call so
// the caller can capture its payload with Do
func ExpectPublish(pub *rpgtoolkitmock.MockPublisher, eventType string) *gomock.Call {
	return pub.EXPECT().
		Publish(gomock.Any(), eventType, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
}

// ExpectPublishFrom expects one event of the given type whose source has sourceID
func ExpectPublishFrom(pub *rpgtoolkitmock.MockPublisher, eventType, sourceID string) *gomock.Call {
	return pub.EXPECT().
		Publish(gomock.Any(), eventType, entityWithID(sourceID), gomock.Any(), gomock.Any()).
		Return(nil)
}

// AllowAnyPublish accepts every event without asserting on it
func AllowAnyPublish(pub *rpgtoolkitmock.MockPublisher) {
	pub.EXPECT().
		Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
}

type idMatcher struct {
	id string
}

func entityWithID(id string) gomock.Matcher {
	return idMatcher{id: id}
}

func (m idMatcher) Matches(x any) bool {
	e, ok := x.(core.Entity)
	return ok && e != nil && e.GetID() == m.id
}

func (m idMatcher) String() string {
	return "entity with id " + m.id
}
