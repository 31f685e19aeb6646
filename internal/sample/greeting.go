package sample

import (
	"github.com/spf13/cast"

	"github.com/vanehq/vane/internal/core"
)

// Greeting greets on enable and says goodbye on disable.
type Greeting struct {
	scope core.Context
	out   *syncWriter

	Name     string
	Hello    core.Message
	Farewell core.Message
	Renamed  core.Message
}

func (g *Greeting) Fields() []core.Field {
	return []core.Field{
		core.ConfigString("name", &g.Name).WithDefault("world").Describe("who to greet"),
		core.LangMessage("hello", &g.Hello).WithDefault("Hello, {0}!"),
		core.LangMessage("farewell", &g.Farewell).WithDefault("Goodbye, {0}!"),
		core.LangMessage("renamed", &g.Renamed).WithDefault("Now greeting {0} instead of {1}."),
	}
}

func (g *Greeting) OnEnable() error {
	g.out.println(g.Hello.Format(g.Name))
	return nil
}

func (g *Greeting) OnDisable() error {
	g.out.println(g.Farewell.Format(g.Name))
	return nil
}

// OnConfigChange picks up a new name from the configuration source.
func (g *Greeting) OnConfigChange() error {
	v, err := g.scope.Root().Config().Resolve(g.scope.Key("name"))
	if err != nil {
		return err
	}
	name, err := cast.ToStringE(v)
	if err != nil {
		return err
	}
	if name != g.Name {
		g.out.println(g.Renamed.Format(name, g.Name))
		g.Name = name
	}
	return nil
}
