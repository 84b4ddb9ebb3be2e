package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// recoverMiddleware converts a panic in a method handler into an error.
func recoverMiddleware(logger *slog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (result sdkmcp.Result, err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic in mcp handler", "method", method, "panic", r, "stack", string(debug.Stack()))
					result = nil
					err = fmt.Errorf("internal error handling %s", method)
				}
			}()
			return next(ctx, method, req)
		}
	}
}
