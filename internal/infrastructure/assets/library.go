package assets

import "sort"

// Library indexes textures by path and sounds by name and queues each new
// one on a Loader.
type Library struct {
	loader   *Loader
	textures map[string]*Texture
	sounds   map[string]*Sound
}

// NewLibrary creates a library feeding loader.
func NewLibrary(loader *Loader) *Library {
	return &Library{
		loader:   loader,
		textures: make(map[string]*Texture),
		sounds:   make(map[string]*Sound),
	}
}

// Loader returns the loader new assets are queued on.
func (l *Library) Loader() *Loader {
	return l.loader
}

// AddTexture registers path once and returns its texture.
func (l *Library) AddTexture(path string) *Texture {
	if t, ok := l.textures[path]; ok {
		return t
	}
	t := NewTexture(path)
	l.textures[path] = t
	l.loader.Add(t)
	return t
}

// AddSound registers a named sound once and returns it.
func (l *Library) AddSound(name, path string) *Sound {
	if s, ok := l.sounds[name]; ok {
		return s
	}
	s := NewSound(path)
	l.sounds[name] = s
	l.loader.Add(s)
	return s
}

// Texture returns a loaded texture.
func (l *Library) Texture(path string) (*Texture, bool) {
	t, ok := l.textures[path]
	if !ok || !t.Loaded() {
		return nil, false
	}
	return t, true
}

// Sound returns a loaded sound.
func (l *Library) Sound(name string) (*Sound, bool) {
	s, ok := l.sounds[name]
	if !ok || !s.Loaded() {
		return nil, false
	}
	return s, true
}

// SoundNames returns the registered sound names, sorted.
func (l *Library) SoundNames() []string {
	names := make([]string, 0, len(l.sounds))
	for name := range l.sounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
