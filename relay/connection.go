package relay

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"sort"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"
)

// Connection is a page of nodes adhering to the GraphQL Cursor Connections Specification. Fields
// returning a Connection are mapped to a <Node>Connection type.
type Connection[T any] struct {
	Edges    []Edge[T]
	PageInfo PageInfo
}

// Edge is a single node of a Connection along with its cursor.
type Edge[T any] struct {
	Node   T
	Cursor string
}

// PageInfo represents the page info of a GraphQL Cursor Connection.
type PageInfo struct {
	HasPreviousPage bool
	HasNextPage     bool
	StartCursor     *string
	EndCursor       *string
}

// PaginationArguments are the arguments given to a connection field.
type PaginationArguments struct {
	First  *int
	After  *string
	Last   *int
	Before *string
}

// PaginationArgumentsFrom extracts the pagination arguments from a resolver's arguments.
func PaginationArgumentsFrom(args map[string]interface{}) PaginationArguments {
	var ret PaginationArguments
	if n, ok := intArgument(args["first"]); ok {
		ret.First = &n
	}
	if n, ok := intArgument(args["last"]); ok {
		ret.Last = &n
	}
	if s, ok := stringArgument(args["after"]); ok {
		ret.After = &s
	}
	if s, ok := stringArgument(args["before"]); ok {
		ret.Before = &s
	}
	return ret
}

func stringArgument(v interface{}) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, v != ""
	case *string:
		if v != nil {
			return *v, *v != ""
		}
	}
	return "", false
}

func intArgument(v interface{}) (int, bool) {
	switch v := v.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case *int:
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

func (args PaginationArguments) Validate() error {
	if args.First != nil {
		if *args.First < 0 {
			return fmt.Errorf("The `first` argument cannot be negative.")
		} else if args.Last != nil {
			return fmt.Errorf("You cannot provide both `first` and `last` arguments.")
		}
	} else if args.Last != nil {
		if *args.Last < 0 {
			return fmt.Errorf("The `last` argument cannot be negative.")
		}
	} else {
		return fmt.Errorf("You must provide either the `first` or `last` argument.")
	}
	return nil
}

// SerializeCursor encodes a cursor value as an opaque string.
func SerializeCursor(cursor interface{}) (string, error) {
	b, err := msgpack.Marshal(cursor)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DeserializeCursor decodes a cursor produced by SerializeCursor into dst.
func DeserializeCursor(s string, dst interface{}) error {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return err
	}
	return msgpack.Unmarshal(b, dst)
}

// Paginate selects the page of nodes described by args. The cursor function must return a value
// that can be marshaled with msgpack and less must order those values. Nodes may be given in any
// order.
func Paginate[T any, C any](nodes []T, cursor func(T) C, less func(a, b C) bool, args PaginationArguments) (*Connection[T], error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}

	var after, before *C
	if args.After != nil {
		after = new(C)
		if err := DeserializeCursor(*args.After, after); err != nil {
			return nil, fmt.Errorf("Invalid after cursor.")
		}
	}
	if args.Before != nil {
		before = new(C)
		if err := DeserializeCursor(*args.Before, before); err != nil {
			return nil, fmt.Errorf("Invalid before cursor.")
		}
	}

	type edge struct {
		node   T
		cursor C
	}
	var edges []edge
	var pageInfo PageInfo
	for _, node := range nodes {
		c := cursor(node)
		if after != nil && !less(*after, c) {
			pageInfo.HasPreviousPage = true
			continue
		}
		if before != nil && !less(c, *before) {
			pageInfo.HasNextPage = true
			continue
		}
		edges = append(edges, edge{node, c})
	}

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i].cursor, edges[j].cursor)
	})

	if args.First != nil {
		pageInfo.HasNextPage = len(edges) > *args.First
		if pageInfo.HasNextPage {
			edges = edges[:*args.First]
		}
	} else {
		pageInfo.HasPreviousPage = len(edges) > *args.Last
		if pageInfo.HasPreviousPage {
			edges = edges[len(edges)-*args.Last:]
		}
	}

	ret := &Connection[T]{
		Edges: make([]Edge[T], len(edges)),
	}
	for i, e := range edges {
		s, err := SerializeCursor(e.cursor)
		if err != nil {
			return nil, errors.Wrap(err, "error serializing cursor")
		}
		ret.Edges[i] = Edge[T]{
			Node:   e.node,
			Cursor: s,
		}
	}
	if len(ret.Edges) > 0 {
		pageInfo.StartCursor = &ret.Edges[0].Cursor
		pageInfo.EndCursor = &ret.Edges[len(ret.Edges)-1].Cursor
	}
	ret.PageInfo = pageInfo
	return ret, nil
}

// IsConnection returns true if v is a Go connection value.
func IsConnection(v interface{}) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	_, ok := ConnectionNodeType(t)
	return ok
}
