package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/roster/internal/persist"
	"github.com/roach88/roster/internal/query"
	"github.com/roach88/roster/internal/record"
	"github.com/roach88/roster/internal/sorting"
	"github.com/roach88/roster/internal/store"
)

// actionFunc executes one action. It returns the outcome case and result
// fields; an error means the step itself was malformed.
type actionFunc func(h *Harness, ctx context.Context, args map[string]any) (string, map[string]any, error)

var actions = map[string]actionFunc{
	"load":             (*Harness).load,
	"save":             (*Harness).save,
	"add":              (*Harness).add,
	"update":           (*Harness).update,
	"delete":           (*Harness).delete,
	"find":             (*Harness).find,
	"linear_search":    (*Harness).linearSearch,
	"binary_search":    (*Harness).binarySearch,
	"search_name":      (*Harness).searchName,
	"search_course":    (*Harness).searchCourse,
	"is_sorted":        (*Harness).isSorted,
	"sort":             (*Harness).sort,
	"reassign_next_id": (*Harness).reassignNextID,
}

// load restores into a fresh store, as a new process would at startup.
func (h *Harness) load(ctx context.Context, _ map[string]any) (string, map[string]any, error) {
	st := store.New()
	res, err := persist.Restore(ctx, h.gateway, st)
	if err != nil {
		return CaseError, map[string]any{"error": err.Error()}, nil
	}
	h.store = st

	lines := make([]int, len(res.Corrupt))
	for i, c := range res.Corrupt {
		lines[i] = c.Line
	}
	return CaseOK, map[string]any{
		"records":       len(res.Records),
		"corrupt":       len(res.Corrupt),
		"corrupt_lines": lines,
		"next_id":       st.NextID(),
	}, nil
}

func (h *Harness) save(ctx context.Context, _ map[string]any) (string, map[string]any, error) {
	if err := h.gateway.Save(ctx, h.store.All()); err != nil {
		return CaseError, map[string]any{"error": err.Error()}, nil
	}
	return CaseOK, map[string]any{"records": h.store.Len()}, nil
}

func (h *Harness) add(_ context.Context, args map[string]any) (string, map[string]any, error) {
	var d record.Draft
	var err error
	if d.Name, _, err = stringArg(args, "name"); err != nil {
		return "", nil, err
	}
	if d.Age, _, err = intArg(args, "age"); err != nil {
		return "", nil, err
	}
	if d.Email, _, err = stringArg(args, "email"); err != nil {
		return "", nil, err
	}
	if d.Course, _, err = stringArg(args, "course"); err != nil {
		return "", nil, err
	}

	r := h.store.Add(d)
	return CaseOK, map[string]any{"id": r.ID, "course": r.Course}, nil
}

func (h *Harness) update(_ context.Context, args map[string]any) (string, map[string]any, error) {
	id, err := requiredInt(args, "id")
	if err != nil {
		return "", nil, err
	}

	var p record.Patch
	for _, key := range []string{"name", "email", "course"} {
		s, ok, err := stringArg(args, key)
		if err != nil {
			return "", nil, err
		}
		if !ok {
			continue
		}
		switch key {
		case "name":
			p.Name = record.Some(s)
		case "email":
			p.Email = record.Some(s)
		case "course":
			p.Course = record.Some(s)
		}
	}
	age, ok, err := intArg(args, "age")
	if err != nil {
		return "", nil, err
	}
	if ok {
		p.Age = record.Some(age)
	}

	r, err := h.store.Update(id, p)
	if err != nil {
		return lookupFailure(err)
	}
	return CaseOK, recordFields(r), nil
}

func (h *Harness) delete(_ context.Context, args map[string]any) (string, map[string]any, error) {
	id, err := requiredInt(args, "id")
	if err != nil {
		return "", nil, err
	}
	confirmed, _, err := boolArg(args, "confirmed")
	if err != nil {
		return "", nil, err
	}

	deleted, err := h.store.Delete(id, confirmed)
	if errors.Is(err, store.ErrNotConfirmed) {
		return CaseNotConfirmed, map[string]any{"deleted": false}, nil
	}
	if err != nil {
		return lookupFailure(err)
	}
	return CaseOK, map[string]any{"deleted": deleted}, nil
}

func (h *Harness) find(_ context.Context, args map[string]any) (string, map[string]any, error) {
	id, err := requiredInt(args, "id")
	if err != nil {
		return "", nil, err
	}
	r, err := h.store.Find(id)
	if err != nil {
		return lookupFailure(err)
	}
	return CaseOK, recordFields(r), nil
}

func (h *Harness) linearSearch(_ context.Context, args map[string]any) (string, map[string]any, error) {
	id, err := requiredInt(args, "id")
	if err != nil {
		return "", nil, err
	}
	r, err := query.LinearSearchByID(h.store, id)
	if err != nil {
		return lookupFailure(err)
	}
	return CaseOK, recordFields(r), nil
}

func (h *Harness) binarySearch(_ context.Context, args map[string]any) (string, map[string]any, error) {
	id, err := requiredInt(args, "id")
	if err != nil {
		return "", nil, err
	}
	r, comparisons, err := query.BinarySearchByID(h.store, id)
	if err != nil {
		if record.IsNotFound(err) {
			return CaseNotFound, map[string]any{"comparisons": comparisons}, nil
		}
		return CaseError, map[string]any{"error": err.Error()}, nil
	}
	fields := recordFields(r)
	fields["comparisons"] = comparisons
	return CaseOK, fields, nil
}

func (h *Harness) searchName(_ context.Context, args map[string]any) (string, map[string]any, error) {
	fragment, _, err := stringArg(args, "fragment")
	if err != nil {
		return "", nil, err
	}
	return CaseOK, map[string]any{"ids": record.IDs(query.SearchByName(h.store, fragment))}, nil
}

func (h *Harness) searchCourse(_ context.Context, args map[string]any) (string, map[string]any, error) {
	fragment, _, err := stringArg(args, "fragment")
	if err != nil {
		return "", nil, err
	}
	return CaseOK, map[string]any{"ids": record.IDs(query.SearchByCourse(h.store, fragment))}, nil
}

func (h *Harness) isSorted(_ context.Context, _ map[string]any) (string, map[string]any, error) {
	return CaseOK, map[string]any{"sorted": query.IsSortedByID(h.store)}, nil
}

func (h *Harness) sort(_ context.Context, args map[string]any) (string, map[string]any, error) {
	keyArg, _, err := stringArg(args, "key")
	if err != nil {
		return "", nil, err
	}
	dirArg, ok, err := stringArg(args, "direction")
	if err != nil {
		return "", nil, err
	}
	if !ok {
		dirArg = string(sorting.Ascending)
	}

	key, err := sorting.ParseKey(keyArg)
	if err != nil {
		return CaseError, map[string]any{"error": err.Error()}, nil
	}
	dir, err := sorting.ParseDirection(dirArg)
	if err != nil {
		return CaseError, map[string]any{"error": err.Error()}, nil
	}
	if err := sorting.SortBy(h.store, key, dir); err != nil {
		return CaseError, map[string]any{"error": err.Error()}, nil
	}
	return CaseOK, map[string]any{"ids": record.IDs(h.store.All())}, nil
}

func (h *Harness) reassignNextID(_ context.Context, args map[string]any) (string, map[string]any, error) {
	ids, err := intsArg(args, "ids")
	if err != nil {
		return "", nil, err
	}
	h.store.ReassignNextIDFrom(ids)
	return CaseOK, map[string]any{"next_id": h.store.NextID()}, nil
}

func lookupFailure(err error) (string, map[string]any, error) {
	if record.IsNotFound(err) {
		return CaseNotFound, nil, nil
	}
	return CaseError, map[string]any{"error": err.Error()}, nil
}

func recordFields(r record.Record) map[string]any {
	return map[string]any{
		"id":     r.ID,
		"name":   r.Name,
		"age":    r.Age,
		"email":  r.Email,
		"course": r.Course,
	}
}

func intArg(args map[string]any, key string) (int, bool, error) {
	v, ok := args[key]
	if !ok {
		return 0, false, nil
	}
	n, isInt := v.(int)
	if !isInt {
		return 0, false, fmt.Errorf("arg %q must be an integer, got %T", key, v)
	}
	return n, true, nil
}

func requiredInt(args map[string]any, key string) (int, error) {
	n, ok, err := intArg(args, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("arg %q is required", key)
	}
	return n, nil
}

func stringArg(args map[string]any, key string) (string, bool, error) {
	v, ok := args[key]
	if !ok {
		return "", false, nil
	}
	if v == nil {
		return "", true, nil
	}
	s, isString := v.(string)
	if !isString {
		return "", false, fmt.Errorf("arg %q must be a string, got %T", key, v)
	}
	return s, true, nil
}

func boolArg(args map[string]any, key string) (bool, bool, error) {
	v, ok := args[key]
	if !ok {
		return false, false, nil
	}
	b, isBool := v.(bool)
	if !isBool {
		return false, false, fmt.Errorf("arg %q must be a boolean, got %T", key, v)
	}
	return b, true, nil
}

func intsArg(args map[string]any, key string) ([]int, error) {
	v, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("arg %q is required", key)
	}
	list, isList := v.([]any)
	if !isList {
		return nil, fmt.Errorf("arg %q must be a list of integers, got %T", key, v)
	}
	ids := make([]int, len(list))
	for i, item := range list {
		n, isInt := item.(int)
		if !isInt {
			return nil, fmt.Errorf("arg %q[%d] must be an integer, got %T", key, i, item)
		}
		ids[i] = n
	}
	return ids, nil
}
