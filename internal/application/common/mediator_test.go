package common_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KungRaseri/forgecraft/internal/application/common"
)

type pingRequest struct{ Value string }

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	return "pong:" + request.(*pingRequest).Value, nil
}

func TestMediator_SendDispatchesToHandler(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, m.Register(reflect.TypeOf(&pingRequest{}), pingHandler{}))

	resp, err := m.Send(context.Background(), &pingRequest{Value: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "pong:hi", resp)
}

func TestMediator_SendUnregisteredType(t *testing.T) {
	m := common.NewMediator()

	_, err := m.Send(context.Background(), &pingRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no handler registered")
}

func TestMediator_RegisterRejectsDuplicates(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, m.Register(reflect.TypeOf(&pingRequest{}), pingHandler{}))

	err := m.Register(reflect.TypeOf(&pingRequest{}), pingHandler{})
	assert.Error(t, err)
}

func TestMediator_SendRejectsNilRequest(t *testing.T) {
	m := common.NewMediator()
	_, err := m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_MiddlewareRunsInRegistrationOrder(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, m.Register(reflect.TypeOf(&pingRequest{}), pingHandler{}))

	var order []string
	m.Use(func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		order = append(order, "first-before")
		resp, err := next(ctx, request)
		order = append(order, "first-after")
		return resp, err
	})
	m.Use(func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		order = append(order, "second-before")
		resp, err := next(ctx, request)
		order = append(order, "second-after")
		return resp, err
	})

	resp, err := m.Send(context.Background(), &pingRequest{Value: "x"})
	require.NoError(t, err)
	assert.Equal(t, "pong:x", resp)
	assert.Equal(t, []string{"first-before", "second-before", "second-after", "first-after"}, order)
}
