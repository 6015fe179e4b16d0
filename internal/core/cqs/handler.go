// Package cqs defines the command and query handler contracts the whole
// service is composed from, plus the decorators that give command handlers
// ambient transaction semantics.
package cqs

import "context"

// CommandHandler processes one command of type C. Commands mutate state and
// carry their results (such as generated identifiers) on the command value
// itself, so C is typically a pointer type.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler processes one query of type Q and returns a result of type R.
// Queries never mutate state and never participate in transactions.
type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, q Q) (R, error)
}

// CommandFunc adapts a function to CommandHandler.
type CommandFunc[C any] func(ctx context.Context, cmd C) error

func (f CommandFunc[C]) Handle(ctx context.Context, cmd C) error { return f(ctx, cmd) }

// QueryFunc adapts a function to QueryHandler.
type QueryFunc[Q, R any] func(ctx context.Context, q Q) (R, error)

func (f QueryFunc[Q, R]) Handle(ctx context.Context, q Q) (R, error) { return f(ctx, q) }
