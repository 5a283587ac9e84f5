package log

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

type entry struct {
	TS     string         `json:"ts"`
	Level  string         `json:"level"`
	ReqID  string         `json:"req_id,omitempty"`
	IP     string         `json:"ip,omitempty"`
	Method string         `json:"method,omitempty"`
	Path   string         `json:"path,omitempty"`
	Action string         `json:"action,omitempty"`
	Status int            `json:"status,omitempty"`
	Err    string         `json:"err,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
}

// write emits one JSON object per line. c may be nil for work that runs
// outside a request (startup, background history writes).
func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := entry{TS: time.Now().UTC().Format(time.RFC3339), Level: level, Action: action, Fields: fields}
	emit(e, c, err)
}

func emit(e entry, c *fiber.Ctx, err error) {
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e.ReqID = rid
		}
	}
	if err != nil {
		e.Err = err.Error()
	}
	b, _ := json.Marshal(e)
	log.Println(string(b))
}

func Info(c *fiber.Ctx, action string, fields map[string]any) { write("info", c, action, nil, fields) }
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write("warn", c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", c, action, err, fields)
}

type reqIDKey struct{}

// WithRequestID carries the fiber request id into service code that only
// sees a context.Context.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, reqIDKey{}, id)
}

func writeCtx(level string, ctx context.Context, action string, err error, fields map[string]any) {
	e := entry{TS: time.Now().UTC().Format(time.RFC3339), Level: level, Action: action, Fields: fields}
	if ctx != nil {
		if rid, ok := ctx.Value(reqIDKey{}).(string); ok {
			e.ReqID = rid
		}
	}
	emit(e, nil, err)
}

func InfoCtx(ctx context.Context, action string, fields map[string]any) {
	writeCtx("info", ctx, action, nil, fields)
}
func WarnCtx(ctx context.Context, action string, err error, fields map[string]any) {
	writeCtx("warn", ctx, action, err, fields)
}
func ErrorCtx(ctx context.Context, action string, err error, fields map[string]any) {
	writeCtx("error", ctx, action, err, fields)
}
