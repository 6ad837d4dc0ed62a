package logging

import "context"

type fieldsKey struct{}

// ContextWith returns a context carrying key/value pairs that every Logger
// backend appends to records logged with that context. Pairs accumulate
// across calls.
//
//	ctx = logging.ContextWith(ctx, "method", info.FullMethod)
func ContextWith(ctx context.Context, args ...any) context.Context {
	if len(args) == 0 {
		return ctx
	}
	prev := ContextFields(ctx)
	fields := make([]any, 0, len(prev)+len(args))
	fields = append(fields, prev...)
	fields = append(fields, args...)
	return context.WithValue(ctx, fieldsKey{}, fields)
}

// ContextFields returns the pairs stored by ContextWith, or nil.
func ContextFields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsKey{}).([]any)
	return fields
}

// merge puts context pairs before the call's own args.
func merge(ctx context.Context, args []any) []any {
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return args
	}
	out := make([]any, 0, len(fields)+len(args))
	out = append(out, fields...)
	return append(out, args...)
}
