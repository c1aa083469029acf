package signup

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/signup/pkg/vdom"
	"github.com/vango-dev/signup/pkg/vtest"
)

func TestRenderEmptyForm(t *testing.T) {
	ctx := vtest.NewCtx()
	defer ctx.Close()

	c := New(ctx)
	defer c.Dispose()

	node := c.Render()
	vtest.ExpectAttribute(t, node, "class", "signup-form")
	vtest.ExpectAttribute(t, node, "placeholder", "Введите почту")
	vtest.ExpectAttribute(t, node, "name", "repeatPassword")
	vtest.ExpectContains(t, node, " novalidate")
	vtest.ExpectNotContains(t, node, "form-error")
	vtest.ExpectNotContains(t, node, "password-strength")
	vtest.ExpectDisabled(t, node, "button", true)
}

func TestRenderErrorsAndStrength(t *testing.T) {
	ctx := vtest.NewCtx()
	defer ctx.Close()

	c := New(ctx, WithCatalog(English()))
	defer c.Dispose()

	c.OnEmailChange("a..b@example.com")
	c.OnPasswordChange("abc")

	node := c.Render()
	vtest.ExpectContains(t, node, "Email contains two dots in a row")
	vtest.ExpectContains(t, node, "Password is too short")
	vtest.ExpectAttribute(t, node, "class", "strength-fill strength-weak")
	vtest.ExpectAttribute(t, node, "style", "width: 33%")
	vtest.ExpectAttribute(t, node, "aria-label", "Weak")
	vtest.ExpectAttribute(t, node, "aria-describedby", "email-error")
}

func TestRenderStrengthBetweenPasswordInputs(t *testing.T) {
	c := View(State{Form: FormState{Password: "x"}, Strength: CalculateStrength("x")}, nil, Handlers{})
	html := vtest.RenderToString(c)

	password := strings.Index(html, `name="password"`)
	bar := strings.Index(html, "password-strength")
	repeat := strings.Index(html, `name="repeatPassword"`)
	if !(password < bar && bar < repeat) {
		t.Errorf("strength bar should sit between the password inputs:\n%s", html)
	}
}

func TestRenderValidEnablesSubmit(t *testing.T) {
	ctx := vtest.NewCtx()
	defer ctx.Close()

	c := New(ctx)
	defer c.Dispose()
	fillValid(c)

	node := c.Render()
	vtest.ExpectDisabled(t, node, "button", false)
	vtest.ExpectAttribute(t, node, "class", "strength-fill strength-strong")
	vtest.ExpectAttribute(t, node, "value", "user@example.com")
}

func TestRenderHandlersDriveController(t *testing.T) {
	ctx := vtest.NewCtx()
	defer ctx.Close()

	sink := &recordingSink{}
	c := New(ctx, WithSink(sink))
	defer c.Dispose()

	vtest.Fire(t, c.Render(), "email", "input", "user@example.com")
	vtest.Fire(t, c.Render(), "email", "blur", "user@example.com")
	vtest.Fire(t, c.Render(), "password", "input", "Abcdef12!")
	vtest.Fire(t, c.Render(), "repeatPassword", "input", "Abcdef12!")
	vtest.Fire(t, c.Render(), "repeatPassword", "blur", "Abcdef12!")
	vtest.FireTag(t, c.Render(), "form", "submit")

	if len(sink.calls) != 1 {
		t.Fatalf("expected submission through the form handler, got %d", len(sink.calls))
	}
	if err := c.Submit(context.Background()); err != nil {
		t.Errorf("form should still be valid: %v", err)
	}
}

func TestViewWithoutHandlers(t *testing.T) {
	node := View(State{}, English(), Handlers{})
	if vdom.FindByName(node, "email").IsInteractive() {
		t.Error("no handlers should be bound")
	}
}
