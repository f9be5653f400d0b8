package llm

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "clean checklist unchanged",
			in:   "1. Add column manager\n2. Use httpOnly cookies",
			want: "1. Add column manager\n2. Use httpOnly cookies",
		},
		{
			name: "strips lead-in",
			in:   "Here is a concise checklist:\n\n- [ ] Virtualize the table\n- [ ] Add export tests",
			want: "- [ ] Virtualize the table\n- [ ] Add export tests",
		},
		{
			name: "strips stacked lead-ins",
			in:   "Certainly!\nBased on the repo description, here's the plan.\n1. Move data fetching server-side",
			want: "1. Move data fetching server-side",
		},
		{
			name: "strips sign-off",
			in:   "1. Add quota tests\n\nLet me know if you'd like more detail!",
			want: "1. Add quota tests",
		},
		{
			name: "strips wrapping fence",
			in:   "```markdown\n- [ ] a\n- [ ] b\n```",
			want: "- [ ] a\n- [ ] b",
		},
		{
			name: "lead-in, fence and sign-off together",
			in:   "Here's the plan:\n```\n1. a\n```\nHope this helps.",
			want: "1. a",
		},
		{
			name: "inner fence kept",
			in:   "1. Use this config:\n```js\nmodule.exports = {}\n```\n2. Done",
			want: "1. Use this config:\n```js\nmodule.exports = {}\n```\n2. Done",
		},
		{
			name: "sign-off words inside an item kept",
			in:   "1. Let me know about quota changes via webhook\n2. Add tests",
			want: "1. Let me know about quota changes via webhook\n2. Add tests",
		},
		{
			name: "only chatter keeps the reply",
			in:   "  Sure, here is the plan.  ",
			want: "Sure, here is the plan.",
		},
		{name: "empty", in: "   \n", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}
