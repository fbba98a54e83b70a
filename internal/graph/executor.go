package graph

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"rz-parfum-be/internal/logger"
	rest "rz-parfum-be/internal/transport"
	"rz-parfum-be/internal/utils"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
)

//go:embed schema.graphqls
var schemaSource string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSource})

var errIntrospection = errors.New("introspection is disabled")

// fieldFunc resolves one root field from its coerced arguments.
type fieldFunc func(ctx context.Context, args map[string]any) (any, error)

// streamFunc opens the event stream of one subscription field.
type streamFunc func(ctx context.Context, args map[string]any) (<-chan any, error)

// executableSchema runs operations validated by the gqlgen handler against
// the resolvers, then shapes the results after the selection sets.
type executableSchema struct {
	schema        *ast.Schema
	resolvers     *Resolver
	queries       map[string]fieldFunc
	mutations     map[string]fieldFunc
	subscriptions map[string]streamFunc
}

func newExecutableSchema(r *Resolver) *executableSchema {
	return &executableSchema{
		schema:        parsedSchema,
		resolvers:     r,
		queries:       queryFields(r.Query()),
		mutations:     mutationFields(r.Mutation()),
		subscriptions: subscriptionFields(r.Subscription()),
	}
}

func (e *executableSchema) Schema() *ast.Schema { return e.schema }

func (e *executableSchema) Complexity(ctx context.Context, typeName, field string, childComplexity int, args map[string]any) (int, bool) {
	return 0, false
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)

	switch opCtx.Operation.Operation {
	case ast.Query:
		return once(func(ctx context.Context) *graphql.Response {
			return e.execRoot(ctx, opCtx, e.schema.Query, e.queries)
		})
	case ast.Mutation:
		return once(func(ctx context.Context) *graphql.Response {
			return e.execRoot(ctx, opCtx, e.schema.Mutation, e.mutations)
		})
	case ast.Subscription:
		return e.subscribe(ctx, opCtx)
	default:
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported GraphQL operation"))
	}
}

func once(fn graphql.ResponseHandler) graphql.ResponseHandler {
	done := false
	return func(ctx context.Context) *graphql.Response {
		if done {
			return nil
		}
		done = true
		return fn(ctx)
	}
}

// execRoot resolves the root fields in document order. A failed non-null
// root field nulls the whole data object.
func (e *executableSchema) execRoot(ctx context.Context, opCtx *graphql.OperationContext, root *ast.Definition, table map[string]fieldFunc) *graphql.Response {
	var (
		data     object
		errs     gqlerror.List
		nullData bool
	)

	for _, f := range graphql.CollectFields(opCtx, opCtx.Operation.SelectionSet, []string{root.Name}) {
		if f.Name == "__typename" {
			data = append(data, entry{f.Alias, root.Name})
			continue
		}

		v, err := e.resolveField(ctx, opCtx, f, table)
		if err != nil {
			errs = append(errs, presentError(ctx, f, err))
			if f.Definition == nil || f.Definition.Type.NonNull {
				nullData = true
			}
			data = append(data, entry{f.Alias, nil})
			continue
		}
		data = append(data, entry{f.Alias, v})
	}

	resp := &graphql.Response{Errors: errs, Data: json.RawMessage("null")}
	if nullData {
		return resp
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return graphql.ErrorResponse(ctx, "encode response: %v", err)
	}
	resp.Data = raw
	return resp
}

func (e *executableSchema) resolveField(ctx context.Context, opCtx *graphql.OperationContext, f graphql.CollectedField, table map[string]fieldFunc) (any, error) {
	if f.Name == "__schema" || f.Name == "__type" {
		return nil, errIntrospection
	}
	fn, ok := table[f.Name]
	if !ok || f.Definition == nil {
		return nil, fmt.Errorf("field %q cannot be resolved", f.Name)
	}

	args := f.ArgumentMap(opCtx.Variables)
	res, err := e.guard(ctx, f, func(ctx context.Context) (any, error) {
		return fn(ctx, args)
	})
	if err != nil {
		return nil, err
	}

	value, err := toValue(res)
	if err != nil {
		return nil, err
	}
	return project(opCtx, value, f.Definition.Type, f.Selections), nil
}

// guard runs next behind the field's @auth directive, if any.
func (e *executableSchema) guard(ctx context.Context, f graphql.CollectedField, next graphql.Resolver) (any, error) {
	d := f.Definition.Directives.ForName("auth")
	if d == nil {
		return next(ctx)
	}
	return e.resolvers.AuthDirective(ctx, nil, next, requiredRole(d))
}

func (e *executableSchema) subscribe(ctx context.Context, opCtx *graphql.OperationContext) graphql.ResponseHandler {
	fields := graphql.CollectFields(opCtx, opCtx.Operation.SelectionSet, []string{e.schema.Subscription.Name})
	if len(fields) != 1 {
		return graphql.OneShot(graphql.ErrorResponse(ctx, "a subscription selects exactly one field"))
	}
	f := fields[0]

	fn, ok := e.subscriptions[f.Name]
	if !ok || f.Definition == nil {
		return graphql.OneShot(graphql.ErrorResponse(ctx, "field %q cannot be subscribed to", f.Name))
	}

	args := f.ArgumentMap(opCtx.Variables)
	res, err := e.guard(ctx, f, func(ctx context.Context) (any, error) {
		return fn(ctx, args)
	})
	if err != nil {
		return graphql.OneShot(&graphql.Response{
			Errors: gqlerror.List{presentError(ctx, f, err)},
			Data:   json.RawMessage("null"),
		})
	}
	events := res.(<-chan any)

	return func(ctx context.Context) *graphql.Response {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			value, err := toValue(ev)
			if err != nil {
				return graphql.ErrorResponse(ctx, "encode event: %v", err)
			}
			raw, err := json.Marshal(object{{f.Alias, project(opCtx, value, f.Definition.Type, f.Selections)}})
			if err != nil {
				return graphql.ErrorResponse(ctx, "encode event: %v", err)
			}
			return &graphql.Response{Data: raw}
		}
	}
}

// presentError maps a resolver error onto the codes of the REST API. Store
// failures are logged and reported without their cause.
func presentError(ctx context.Context, f graphql.CollectedField, err error) *gqlerror.Error {
	var code string
	msg := err.Error()

	switch {
	case errors.Is(err, ErrUnauthenticated):
		code = utils.CodeUnauthenticated
	case errors.Is(err, ErrForbidden):
		code = utils.CodeAccessDenied
	case errors.Is(err, errIntrospection):
		code = utils.CodeBadRequest
	default:
		status := rest.StatusFor(err)
		code = utils.ErrorCode(status)
		if status == http.StatusBadGateway {
			logger.FromCtx(ctx).Error("graphql field failed",
				zap.String("field", f.Name),
				zap.Error(err),
			)
			msg = "service temporarily unavailable"
		}
	}

	return &gqlerror.Error{
		Message:    msg,
		Path:       ast.Path{ast.PathName(f.Alias)},
		Extensions: map[string]any{"code": code},
	}
}

// toValue turns a resolver result into plain JSON values.
func toValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// project keeps the selected fields of v, under their aliases and in
// selection order. Nested objects are shaped after their own selections.
func project(opCtx *graphql.OperationContext, v any, typ *ast.Type, sel ast.SelectionSet) any {
	if v == nil {
		if typ.Elem != nil && typ.NonNull {
			return []any{}
		}
		return nil
	}

	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = project(opCtx, item, typ.Elem, sel)
		}
		return out
	case map[string]any:
		typeName := typ.Name()
		out := make(object, 0, len(sel))
		for _, f := range graphql.CollectFields(opCtx, sel, []string{typeName}) {
			if f.Name == "__typename" {
				out = append(out, entry{f.Alias, typeName})
				continue
			}
			if f.Definition == nil {
				continue
			}
			out = append(out, entry{f.Alias, project(opCtx, val[f.Name], f.Definition.Type, f.Selections)})
		}
		return out
	default:
		return v
	}
}

type entry struct {
	key   string
	value any
}

// object is a JSON object that keeps its key order.
type object []entry

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// bind decodes coerced arguments into dst.
func bind(args map[string]any, dst any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
