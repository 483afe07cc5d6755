package auth_test

import (
	"testing"

	"planner/internal/auth"
	"planner/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProvider_SubscribeDeliversImmediately(t *testing.T) {
	p := auth.NewProvider()
	principal := &model.Principal{ID: uuid.New(), Email: "a@example.com", EmailVerified: true}
	p.Set(principal)

	var got []*model.Principal
	unsubscribe := p.Subscribe(func(pr *model.Principal) {
		got = append(got, pr)
	})
	defer unsubscribe()

	assert.Len(t, got, 1)
	assert.Equal(t, principal, got[0])
}

func TestProvider_SubscribeDeliversNilWhenSignedOut(t *testing.T) {
	p := auth.NewProvider()

	var got []*model.Principal
	called := 0
	unsubscribe := p.Subscribe(func(pr *model.Principal) {
		got = append(got, pr)
		called++
	})
	defer unsubscribe()

	assert.Equal(t, 1, called)
	assert.Nil(t, got[0])
}

func TestProvider_NotifiesOnChange(t *testing.T) {
	p := auth.NewProvider()

	var got []*model.Principal
	unsubscribe := p.Subscribe(func(pr *model.Principal) {
		got = append(got, pr)
	})
	defer unsubscribe()

	principal := &model.Principal{ID: uuid.New(), Email: "a@example.com"}
	p.Set(principal)
	p.Set(nil) // sign out

	assert.Len(t, got, 3)
	assert.Nil(t, got[0])
	assert.Equal(t, principal, got[1])
	assert.Nil(t, got[2])
	assert.Nil(t, p.Current())
}

func TestProvider_Unsubscribe(t *testing.T) {
	p := auth.NewProvider()

	called := 0
	unsubscribe := p.Subscribe(func(*model.Principal) { called++ })
	unsubscribe()

	p.Set(&model.Principal{ID: uuid.New()})
	assert.Equal(t, 1, called) // only the immediate delivery
}
