package varexport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// CompositionSuite covers how namespaces see each other's variables.
type CompositionSuite struct {
	suite.Suite
	reg *Registry
}

func TestCompositionSuite(t *testing.T) {
	suite.Run(t, new(CompositionSuite))
}

func (s *CompositionSuite) SetupTest() {
	s.reg = newTestRegistry(s.T())
}

func (s *CompositionSuite) TestParentChain() {
	a := s.reg.ForNamespace("A").IncludeInGlobal()
	b := s.reg.ForNamespace("B").SetParent(a)
	b.ExportVariable(managedInt("X", 1))

	s.Equal([]string{"A-B-X"}, variableNames(s.reg.Global().Variables()))
	s.Equal([]string{"B-X"}, variableNames(a.Variables()))
	s.Equal([]string{"X"}, variableNames(b.Variables()))
	s.Equal(1, s.reg.Global().Value("A-B-X"))
	s.Equal("A-B-X=1", func() string {
		v, ok := s.reg.Global().Variable("A-B-X")
		s.Require().True(ok)
		return v.String()
	}())
}

func (s *CompositionSuite) TestOwnAndChildVariablesMerge() {
	parent := s.reg.ForNamespace("parent")
	child := s.reg.ForNamespace("child").SetParent(parent)
	parent.ExportVariable(managedInt("b", 1))
	child.ExportVariable(managedInt("a", 2))

	s.Equal([]string{"b", "child-a"}, variableNames(parent.Variables()))

	child.SetParent(nil)
	s.Equal([]string{"b"}, variableNames(parent.Variables()))
}

func (s *CompositionSuite) TestIncludeGlobalInGlobal() {
	g := s.reg.Global()
	s.Same(g, g.IncludeInGlobal())
	s.Nil(g.Parent())

	g.ExportVariable(managedInt("x", 1))
	s.Equal([]string{"x"}, variableNames(g.Variables()))
}

func (s *CompositionSuite) TestCyclicParentsTerminate() {
	a := s.reg.ForNamespace("a")
	b := s.reg.ForNamespace("b").SetParent(a)
	a.SetParent(b)
	a.ExportVariable(managedInt("x", 1))
	b.ExportVariable(managedInt("y", 2))

	s.Equal([]string{"b-y", "x"}, variableNames(a.Variables()))
	s.Equal([]string{"a-x", "y"}, variableNames(b.Variables()))
}

func (s *CompositionSuite) TestStartTime() {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.reg.SetStartTime(start)

	got, ok := s.reg.StartTime()
	s.True(ok)
	s.Equal(start, got)

	s.Run("absent while global is otherwise empty", func() {
		s.Empty(s.reg.Global().Variables())
	})

	s.reg.ForNamespace("n").IncludeInGlobal().ExportVariable(managedInt("x", 1))

	s.Run("listed once global has variables", func() {
		s.Equal([]string{StartTimeName, "n-x"}, variableNames(s.reg.Global().Variables()))
		s.Equal("2024-05-01T12:00:00Z", s.reg.Global().Value(StartTimeName))
	})

	s.Run("only in global", func() {
		s.Equal([]string{"x"}, variableNames(s.reg.ForNamespace("n").Variables()))
	})

	s.Run("gone once cleared", func() {
		s.reg.ClearStartTime()
		s.Equal([]string{"n-x"}, variableNames(s.reg.Global().Variables()))
		_, ok := s.reg.Global().Variable(StartTimeName)
		s.False(ok)
	})
}

func (s *CompositionSuite) TestVisitNamespaceVariables() {
	s.reg.ForNamespace("visit").ExportVariable(managedInt("b", 2))
	s.reg.ForNamespace("visit").ExportVariable(managedInt("a", 1))

	var seen []string
	s.reg.VisitNamespaceVariables("visit", func(v Variable) {
		seen = append(seen, v.String())
	})
	s.Equal([]string{"a=1", "b=2"}, seen)
}

func TestDefaultRegistry(t *testing.T) {
	suite.Run(t, new(defaultRegistrySuite))
}

type defaultRegistrySuite struct {
	suite.Suite
}

func (s *defaultRegistrySuite) TearDownTest() {
	Default().Reset()
}

func (s *defaultRegistrySuite) TestPackageLevelHelpers() {
	s.Same(Default().Global(), Global())
	s.Same(Default().ForNamespace("pkg-level"), ForNamespace("pkg-level"))

	ForNamespace("pkg-level").ExportVariable(managedInt("v", 7))
	var got []Variable
	VisitNamespaceVariables("pkg-level", func(v Variable) { got = append(got, v) })
	s.Require().Len(got, 1)
	s.Equal(7, got[0].Value())
}
