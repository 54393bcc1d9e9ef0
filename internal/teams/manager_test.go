package teams

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aaronzipp/scoreboards/internal/chat"
	"github.com/aaronzipp/scoreboards/internal/surface"
	"github.com/aaronzipp/scoreboards/internal/surface/memory"
)

type fixture struct {
	host     *memory.Host
	surfaces []surface.Surface
	manager  *Manager
}

func newFixture(n int) *fixture {
	f := &fixture{host: memory.NewHost()}
	for i := 0; i < n; i++ {
		f.surfaces = append(f.surfaces, f.host.NewSurface())
	}
	f.manager = NewManager(f.host, func() []surface.Surface { return f.surfaces })
	return f
}

func TestCreateRegistersOnEverySurface(t *testing.T) {
	t.Parallel()

	f := newFixture(2)
	team, err := f.manager.Create("Red", "&cRed Team", chat.Red)
	require.NoError(t, err)
	require.Equal(t, "Red", team.Name())

	for _, s := range f.surfaces {
		st := s.Team("Red")
		require.NotNil(t, st)
		require.Equal(t, "§cRed Team", st.DisplayName())
		require.Equal(t, chat.Red, st.Color())
		require.Equal(t, "§c", st.Prefix())
	}
	require.Equal(t, 1, f.manager.Len())
}

func TestCreateRejectsStrippedDuplicate(t *testing.T) {
	t.Parallel()

	f := newFixture(1)
	_, err := f.manager.Create("Red", "Red", chat.White)
	require.NoError(t, err)

	for _, name := range []string{"&cRed", "§cRED", "red"} {
		_, err = f.manager.Create(name, "again", chat.Red)
		var dup *DuplicateTeamError
		require.True(t, errors.As(err, &dup), name)
		require.Equal(t, name, dup.Name)
	}
	require.Equal(t, 1, f.manager.Len())
}

func TestCreateRejectsLongAndReservedNames(t *testing.T) {
	t.Parallel()

	f := newFixture(1)

	_, err := f.manager.Create("abcdefghijklmnopq", "x", chat.White)
	var tooLong *NameTooLongError
	require.True(t, errors.As(err, &tooLong))

	_, err = f.manager.Create("abcdefghijklmnop", "x", chat.White)
	require.NoError(t, err, "sixteen characters is allowed")

	_, err = f.manager.Create("line3", "x", chat.White)
	var reserved *ReservedNameError
	require.True(t, errors.As(err, &reserved))

	_, err = f.manager.Create("liners", "x", chat.White)
	require.NoError(t, err)
}

func TestDuplicateIsReportedBeforeLength(t *testing.T) {
	t.Parallel()

	f := newFixture(0)
	_, err := f.manager.Create("Blue", "Blue", chat.Blue)
	require.NoError(t, err)

	_, err = f.manager.Create("&9&l&n&o&k&mBlue&r", "x", chat.Blue)
	var dup *DuplicateTeamError
	require.True(t, errors.As(err, &dup))
}

func TestFindFoldsCaseAndColour(t *testing.T) {
	t.Parallel()

	f := newFixture(0)
	_, err := f.manager.Create("Straße", "x", chat.White)
	require.NoError(t, err)

	team, ok := f.manager.Find("&6STRASSE")
	require.True(t, ok)
	require.Equal(t, "Straße", team.Name())

	_, ok = f.manager.Find("Strasse2")
	require.False(t, ok)

	_, err = f.manager.Create("STRASSE", "y", chat.White)
	var dup *DuplicateTeamError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, 1, f.manager.Len())
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	f := newFixture(0)
	_, ok := f.manager.Suggest("anything")
	require.False(t, ok)

	for _, name := range []string{"Red", "Blue", "Green"} {
		_, err := f.manager.Create(name, name, chat.White)
		require.NoError(t, err)
	}

	name, ok := f.manager.Suggest("grene")
	require.True(t, ok)
	require.Equal(t, "Green", name)

	name, ok = f.manager.Suggest("&cBLU")
	require.True(t, ok)
	require.Equal(t, "Blue", name)

	_, ok = f.manager.Suggest("Yellowish")
	require.False(t, ok)
}

func TestMembersBecomeEntries(t *testing.T) {
	t.Parallel()

	f := newFixture(1)
	s := f.surfaces[0]
	alice := f.host.Join("alice")
	bob := f.host.Join("bob")

	team, err := f.manager.Create("Red", "Red", chat.Red)
	require.NoError(t, err)

	team.AddViewer(alice.ID())
	team.AddViewer(bob.ID())
	team.AddViewer(alice.ID())
	require.Equal(t, []string{"alice", "bob"}, s.Team("Red").Entries())
	require.Len(t, team.Members(), 2)

	f.host.Leave(bob.ID())
	f.manager.RefreshAll(s)
	require.Equal(t, []string{"alice"}, s.Team("Red").Entries(), "offline members are dropped")

	require.True(t, team.RemoveViewer(alice.ID()))
	require.False(t, team.RemoveViewer(alice.ID()))
	require.Empty(t, s.Team("Red").Entries())
}

func TestRefreshRegistersMissingTeamLazily(t *testing.T) {
	t.Parallel()

	f := newFixture(0)
	team, err := f.manager.Create("Red", "Red", chat.Red)
	require.NoError(t, err)

	late := memory.NewSurface("late")
	require.Nil(t, late.Team("Red"))
	f.manager.RefreshAll(late)
	require.NotNil(t, late.Team("Red"))

	require.NoError(t, late.Team("Red").Unregister())
	team.RefreshOn(late)
	require.NotNil(t, late.Team("Red"), "refresh recreates a team removed behind its back")
}

func TestRemoveAndDestroyAll(t *testing.T) {
	t.Parallel()

	f := newFixture(1)
	s := f.surfaces[0]
	red, err := f.manager.Create("Red", "Red", chat.Red)
	require.NoError(t, err)
	blue, err := f.manager.Create("Blue", "Blue", chat.Blue)
	require.NoError(t, err)

	other := newFixture(0)
	require.False(t, other.manager.Remove(red), "teams of another manager are ignored")
	require.Equal(t, 2, f.manager.Len())

	require.True(t, f.manager.Remove(red))
	require.False(t, f.manager.Remove(red))
	require.True(t, red.Destroyed())
	require.Nil(t, s.Team("Red"))

	red.RefreshOn(s)
	require.Nil(t, s.Team("Red"), "a destroyed team stays off the surface")

	snapshot := f.manager.All()
	f.manager.DestroyAll()
	require.Zero(t, f.manager.Len())
	require.Len(t, snapshot, 1, "snapshots are unaffected by later removal")
	require.True(t, blue.Destroyed())
	require.Nil(t, s.Team("Blue"))

	f.manager.DestroyAll()
}

func TestRemoveViewerPrunesEveryTeam(t *testing.T) {
	t.Parallel()

	f := newFixture(1)
	v := f.host.Join("carol")
	red, err := f.manager.Create("Red", "Red", chat.Red)
	require.NoError(t, err)
	blue, err := f.manager.Create("Blue", "Blue", chat.Blue)
	require.NoError(t, err)
	red.AddViewer(v.ID())
	blue.AddViewer(v.ID())

	f.manager.RemoveViewer(v.ID())
	require.False(t, red.Has(v.ID()))
	require.False(t, blue.Has(v.ID()))
}

func TestConcurrentCreateKeepsNamesUnique(t *testing.T) {
	t.Parallel()

	f := newFixture(2)
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.manager.Create("Shared", "x", chat.Gold); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
			f.manager.RefreshAll(f.surfaces[0])
		}()
	}
	wg.Wait()

	require.Equal(t, 1, created)
	require.Equal(t, 1, f.manager.Len())
}
