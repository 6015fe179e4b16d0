package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tradebook/internal/core/tx"
	"tradebook/internal/infrastructure/storage/postgres"
	"tradebook/pkg/logger"
)

var tracer = otel.Tracer("tradebook/scope")

// Scope gives every request its own transaction scope: one lazily-acquired
// database connection shared by every command handler the request invokes.
// The scope is closed after the handler chain on every exit path, including
// panics, which is when the commit-vs-rollback decision is made.
//
// All transaction requests must funnel through the scope; nothing else may
// begin a transaction on the request's connection.
func Scope(pool *postgres.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn := postgres.NewConn(pool)
		scope := tx.NewScope(conn)

		ctx := tx.WithScope(c.Request.Context(), scope)
		ctx = postgres.WithConn(ctx, conn)
		c.Request = c.Request.WithContext(ctx)

		defer func() {
			// Finalize must complete even if the request context was
			// cancelled mid-flight.
			closeCtx, span := tracer.Start(context.WithoutCancel(ctx), "scope.close",
				trace.WithAttributes(attribute.String("http.path", c.Request.URL.Path)))
			defer span.End()

			counter := scope.Counter()
			if counter != nil {
				span.SetAttributes(
					attribute.Int("scope.begins", counter.Begins()),
					attribute.Int("scope.commits", counter.Commits()),
				)
			}

			if err := scope.Close(closeCtx); err != nil {
				// The response is already written; a finalize failure may
				// mean inconsistent persisted state, so it gets its own
				// loud log line.
				span.RecordError(err)
				logger.Error(closeCtx, "transaction scope finalize failed",
					"error", err,
					"path", c.Request.URL.Path,
				)
			}
		}()

		c.Next()
	}
}
