package templates

// Option is one choice of a select input.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// formField writes a labelled text input.
func formField(h *htmlWriter, label, name, inputType, value string, required bool) {
	h.raw(`<label class="form-control w-full max-w-xs"><div class="label"><span class="label-text">`)
	h.text(label)
	h.raw(`</span></div><input class="input input-sm input-bordered"`)
	h.attr("type", inputType)
	h.attr("name", name)
	h.attr("value", value)
	h.boolAttr("required", required)
	h.raw("></label>")
}

// formSelect writes a labelled select input.
func formSelect(h *htmlWriter, label, name string, options []Option) {
	h.raw(`<label class="form-control w-full max-w-xs"><div class="label"><span class="label-text">`)
	h.text(label)
	h.raw(`</span></div><select class="select select-sm select-bordered"`)
	h.attr("name", name)
	h.raw(">")
	for _, option := range options {
		h.raw("<option")
		h.attr("value", option.Value)
		h.boolAttr("selected", option.Selected)
		h.raw(">")
		h.text(option.Label)
		h.raw("</option>")
	}
	h.raw("</select></label>")
}

// createForm opens a collapsible POST form; open keeps it expanded, used
// when it is shown again with an error.
func createForm(h *htmlWriter, title, action string, open bool) {
	h.raw(`<details class="collapse collapse-arrow bg-base-100 mb-4"`)
	h.boolAttr("open", open)
	h.raw(`><summary class="collapse-title font-medium">`)
	h.text(title)
	h.raw(`</summary><div class="collapse-content"><form method="post" class="flex flex-wrap items-end gap-3"`)
	h.urlAttr("action", action)
	h.raw(">")
}

func closeCreateForm(h *htmlWriter, submit string) {
	h.raw(`<button type="submit" class="btn btn-sm btn-primary">`)
	h.text(submit)
	h.raw("</button></form></div></details>")
}
