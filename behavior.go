package webapp

// behavior is the built-in logic of a kind. Hooks run on the runtime
// goroutine; updated runs for every stored value, including those stored by
// the initialization sweep before created.
type behavior interface {
	created(e *Element)
	updated(e *Element, name string, v any)
	detached(e *Element)
}

func newBehavior(k Kind) behavior {
	switch k {
	case KindText:
		return textBehavior{}
	case KindContainer:
		return &containerBehavior{}
	case KindImage:
		return &imageBehavior{}
	case KindInput:
		return inputBehavior{}
	}
	return nopBehavior{}
}

type nopBehavior struct{}

func (nopBehavior) created(*Element)              {}
func (nopBehavior) updated(*Element, string, any) {}
func (nopBehavior) detached(*Element)             {}

// textBehavior writes the text attribute as surface content and aligns it.
type textBehavior struct{ nopBehavior }

func (textBehavior) updated(e *Element, name string, v any) {
	switch name {
	case "text":
		if s, ok := v.(string); ok {
			e.surface.SetText(s)
		}
	case "align":
		if s, ok := v.(string); ok {
			e.surface.SetStyle("textAlign", s)
		}
	}
}

type inputBehavior struct{ nopBehavior }

func (inputBehavior) updated(e *Element, name string, v any) {
	if name == "placeholder" {
		if s, ok := v.(string); ok {
			e.surface.SetAttr("placeholder", s)
		}
	}
}

// imageBehavior shows src. An svg element loads the source as markup
// through the runtime loader; the result is dropped if a newer src was
// written meanwhile.
type imageBehavior struct {
	nopBehavior
	seq int
}

func (b *imageBehavior) updated(e *Element, name string, v any) {
	if name != "src" {
		return
	}
	src, _ := v.(string)
	if e.template.tag() != "svg" {
		e.surface.SetAttr("src", src)
		return
	}
	b.seq++
	if src == "" {
		return
	}
	seq := b.seq
	e.rt.LoadText(e, src, func(text string) {
		if seq == b.seq {
			e.surface.SetText(text)
		}
	})
}
