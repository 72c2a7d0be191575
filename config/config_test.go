package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glid-app/studio/dsl"
)

func TestTargetsArePositive(t *testing.T) {
	for _, tg := range Targets() {
		assert.Greater(t, tg.Width, 0, tg.Key)
		assert.Greater(t, tg.Height, 0, tg.Key)
	}
	for _, tg := range PostTargets() {
		assert.NotEqual(t, PlatformCustom, tg.Key)
	}
	_, err := LookupTarget("myspace")
	assert.Error(t, err)
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#fffbeb")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0xff, G: 0xfb, B: 0xeb, A: 0xff}, c)
	assert.Equal(t, "#fffbeb", c.Hex())

	short, err := ParseHex("#0f8")
	require.NoError(t, err)
	assert.Equal(t, "#00ff88", short.Hex())

	_, err = ParseHex("#12345")
	assert.Error(t, err)

	assert.True(t, Sand.IsLight())
	assert.False(t, Emerald.IsLight())
	assert.False(t, Stone.IsLight())
}

func TestApplyTemplateKeepsNonTextFields(t *testing.T) {
	p := NewPost()
	require.NoError(t, p.SetPlatform(PlatformTwitter))
	require.NoError(t, p.SetPalette(PaletteDark))
	p.ShowBadge = false
	p.Headline = "custom"

	require.NoError(t, p.ApplyTemplate("stats"))
	assert.Equal(t, "2 Ratings", p.Headline)
	assert.Equal(t, "Zero Guesswork", p.Subheadline)
	assert.Equal(t, PlatformTwitter, p.Platform)
	assert.Equal(t, PaletteDark, p.Background.Palette)
	assert.False(t, p.ShowBadge)
	assert.True(t, p.ShowLogo)

	assert.Error(t, p.ApplyTemplate("unknown"))
	assert.Equal(t, "stats", p.Template)
}

func TestQuoteTemplateHasNoSubheadline(t *testing.T) {
	tpl, err := LookupTemplate("quote")
	require.NoError(t, err)
	assert.Empty(t, tpl.Subheadline)
}

func TestMockupSettersClamp(t *testing.T) {
	m := NewMockup()
	m.SetShadow(150)
	m.SetRotation(-45)
	m.SetScale(10)
	assert.Equal(t, 100.0, m.ShadowIntensity)
	assert.Equal(t, -30.0, m.Rotation)
	assert.Equal(t, 40.0, m.Scale)

	m.SetScale(500)
	assert.Equal(t, 120.0, m.Scale)

	m.SetGradient(Gradient{Start: Sky, End: Rose, Angle: -90})
	assert.Equal(t, 270.0, m.Background.Gradient.Angle)
	assert.Equal(t, BackgroundGradient, m.Background.Mode)
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewPost()
	snap := p.Clone().(*Post)
	p.Headline = "changed"
	assert.Equal(t, "Big News!", snap.Headline)

	m := NewMockup()
	ms := m.Clone().(*Mockup)
	m.SetScale(120)
	assert.Equal(t, 80.0, ms.Scale)
}

func TestFromDocumentPost(t *testing.T) {
	doc, err := dsl.ParseString(`post launch {
  headline: "Hello ${city | there}"
  template stats
  platform linkedin
  background gradient { start: #059669; end: Sky; angle: 90deg }
  badge off
}`)
	require.NoError(t, err)

	comp, err := FromDocument(doc, map[string]any{"city": "Austin"})
	require.NoError(t, err)
	p, ok := comp.(*Post)
	require.True(t, ok)

	assert.Equal(t, "stats", p.Template)
	assert.Equal(t, "Hello Austin", p.Headline, "显式文案应覆盖模板，不受语句顺序影响")
	assert.Equal(t, "Zero Guesswork", p.Subheadline)
	assert.Equal(t, PlatformLinkedIn, p.Platform)
	assert.Equal(t, BackgroundGradient, p.Background.Mode)
	assert.Equal(t, Sky, p.Background.Gradient.End)
	assert.Equal(t, 90.0, p.Background.Gradient.Angle)
	assert.False(t, p.ShowBadge)
	assert.Equal(t, "linkedin", p.Target().Key)
}

func TestFromDocumentMockup(t *testing.T) {
	doc, err := dsl.ParseString(`mockup {
  device pixel-8
  platform custom
  background gradient Sunset
  shadow 250
  rotation -8deg
  scale 95
  reflection: false
  screenshot: "shots/home.png"
}`)
	require.NoError(t, err)

	comp, err := FromDocument(doc, nil)
	require.NoError(t, err)
	m, ok := comp.(*Mockup)
	require.True(t, ok)

	assert.Equal(t, "pixel-8", m.Device)
	assert.False(t, m.Profile().HasIsland)
	assert.Equal(t, PlatformCustom, m.Platform)
	assert.Equal(t, Violet, m.Background.Gradient.Start)
	assert.Equal(t, 100.0, m.ShadowIntensity)
	assert.Equal(t, -8.0, m.Rotation)
	assert.Equal(t, 95.0, m.Scale)
	assert.False(t, m.ShowReflection)
	assert.Equal(t, "shots/home.png", m.SourcePath)

	subject, variant := m.FilenameParts()
	assert.Equal(t, "pixel-8", subject)
	assert.Equal(t, "custom", variant)
}

func TestFromDocumentErrors(t *testing.T) {
	cases := []string{
		`post { platform myspace }`,
		`post { wobble: 3 }`,
		`mockup { device nokia }`,
		`mockup { background plaid }`,
		`mockup { background solid #zz }`,
	}
	for _, src := range cases {
		doc, err := dsl.ParseString(src)
		if err != nil {
			continue
		}
		_, err = FromDocument(doc, nil)
		assert.Error(t, err, src)
	}
}
