package binding

import (
	"errors"
	"fmt"
	"testing"
)

type nullBean struct {
	FormString  *string
	FormInteger *int32
}

func (b *nullBean) Targets() []Target {
	return []Target{
		StringVar(&b.FormString, "formString"),
		IntegerVar(&b.FormInteger, "formInteger"),
	}
}

func (b *nullBean) String() string {
	return fmt.Sprintf("%s,%s", text(b.FormString), text(b.FormInteger))
}

func text[T any](p *T) string {
	if p == nil {
		return NullText
	}
	return fmt.Sprint(*p)
}

func TestBindBean_MatchesDirectBinding(t *testing.T) {
	t.Parallel()

	inputs := map[string]func() FieldSet{
		"empty": func() FieldSet { return FieldSet{} },
		"no values": func() FieldSet {
			var s FieldSet
			s.Mark("formString")
			s.Mark("formInteger")
			return s
		},
		"string empty integer no value": func() FieldSet {
			var s FieldSet
			s.Add("formString", "")
			s.Mark("formInteger")
			return s
		},
		"both empty": func() FieldSet {
			var s FieldSet
			s.Add("formString", "")
			s.Add("formInteger", "")
			return s
		},
		"string only": func() FieldSet {
			var s FieldSet
			s.Add("formString", "x")
			return s
		},
		"both set": func() FieldSet {
			var s FieldSet
			s.Add("formString", "x")
			s.Add("formInteger", "-7")
			return s
		},
	}

	for name, build := range inputs {
		bean := &nullBean{}
		beanErr := BindBean(Sources{SourceForm: build()}, bean)

		values, directErr := Bind(build(), nullFormParams())

		if (beanErr == nil) != (directErr == nil) {
			t.Fatalf("%s: outcome mismatch bean=%v direct=%v", name, beanErr, directErr)
		}
		if beanErr != nil {
			if beanErr.Error() != directErr.Error() {
				t.Fatalf("%s: error mismatch bean=%q direct=%q", name, beanErr, directErr)
			}
			continue
		}
		if got, want := bean.String(), values.Format(","); got != want {
			t.Fatalf("%s: bean rendered %q, direct rendered %q", name, got, want)
		}
	}
}

func TestBindTargets_AssignsNothingOnFailure(t *testing.T) {
	t.Parallel()

	seed := "seed"
	bean := &nullBean{FormString: &seed}

	var fields FieldSet
	fields.Add("formString", "value")
	fields.Add("formInteger", "")

	err := BindBean(Sources{SourceForm: fields}, bean)
	if !errors.Is(err, ErrBinding) {
		t.Fatalf("expected binding error, got %v", err)
	}
	if bean.FormString == nil || *bean.FormString != "seed" {
		t.Fatalf("expected bean to be untouched, got %v", text(bean.FormString))
	}
}

func TestBindTargets_AbsentAssignsNil(t *testing.T) {
	t.Parallel()

	seed := int32(3)
	bean := &nullBean{FormInteger: &seed}
	if err := BindBean(Sources{}, bean); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if bean.FormInteger != nil || bean.FormString != nil {
		t.Fatalf("expected nil fields, got %s", bean)
	}
}

func TestStringsVar(t *testing.T) {
	t.Parallel()

	var tags []string
	var fields FieldSet
	fields.Add("tag", "a")
	fields.Add("tag", "b")

	if err := BindTargets(Sources{SourceForm: fields}, StringsVar(&tags, "tag")); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if len(tags) != 2 || tags[0] != "a" || tags[1] != "b" {
		t.Fatalf("unexpected tags %v", tags)
	}
}
