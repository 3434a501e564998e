package etl

import (
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy2804/iros22-timetable"
	"github.com/andy2804/iros22-timetable/errors"
)

func createScraper(t *testing.T) *ProgramScraper {
	scraper, err := NewProgramScraper(DefaultConventions(), nil)
	require.NoError(t, err)
	return scraper
}

func TestProgramScraper_Scrap(t *testing.T) {
	doc, err := LoadFile(path.Join("..", "testfiles", "program_monday.html"))
	require.NoError(t, err)

	program, err := createScraper(t).Scrap(doc)
	require.NoError(t, err)

	expected := []timetable.Paper{
		{
			Date:     "Monday October 24, 2022",
			Time:     "10:00-10:10",
			ID:       "Paper MoA-1.1",
			Abstract: "Keywords: Grasping, Deep Learning in Robotics and Automation\nAbstract: We present a method\nfor grasping objects\nin clutter.",
			Title:    "Learning to Grasp in Clutter",
		},
		{
			Date:     "Monday October 24, 2022",
			Time:     "10:10-10:20",
			ID:       "Paper MoA-1.2",
			Abstract: "Keywords: Aerial Systems: Applications, Visual Servoing\nAbstract: Aerial manipulators need\naccurate visual feedback.",
			Title:    "Visual Servoing for Aerial Manipulation",
		},
		{
			Date:     "Monday October 24, 2022",
			Time:     "10:00-10:10",
			ID:       "Paper MoA-2.1",
			Abstract: "Keywords: Legged Robots, Deep Learning in Robotics and Automation\nAbstract: Soft terrain makes\nlegged locomotion hard.",
			Title:    "Legged Locomotion on Soft Terrain",
		},
	}
	assert.Equal(t, expected, program.Papers)

	assert.Equal(t, timetable.RoomMap{
		"MoA-1": "Regular session, Kyoto (Room 1)",
		"MoA-2": "Regular session, Osaka (Room 2)",
	}, program.Rooms)
}

func TestProgramScraper_OnePaperPerAnchor(t *testing.T) {
	doc, err := LoadFile(path.Join("..", "testfiles", "program_monday.html"))
	require.NoError(t, err)

	anchors := doc.Find(DefaultConventions().TitleSelector).Length()
	program, err := createScraper(t).Scrap(doc)
	require.NoError(t, err)

	require.Len(t, program.Papers, anchors)
	for i, p := range program.Papers {
		for field, value := range map[string]string{"date": p.Date, "time": p.Time, "id": p.ID, "abstract": p.Abstract, "title": p.Title} {
			assert.NotEmpty(t, value, "paper %d: %s", i, field)
		}
	}
}

const slotTemplate = `<html><body><h3>Technical Program for Tuesday October 25, 2022</h3><table>
<tr class="pHdr"><td><a>%s</a></td></tr>
<tr><td><span class="pTtl"><a onclick="viewAbstract('7'); return false">Title<br></a></span></td></tr>
<tr><td><div id="Ab7">  Keywords: a

   Abstract:   b  </div></td></tr>
</table></body></html>`

func TestProgramScraper_Slot(t *testing.T) {
	page := strings.Replace(slotTemplate, "%s", "10:00-10:15, P1.2", 1)

	program, err := createScraper(t).ScrapReader(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, program.Papers, 1)

	p := program.Papers[0]
	assert.Equal(t, "10:00-10:15", p.Time)
	assert.Equal(t, "P1.2", p.ID)
	assert.Equal(t, "Tuesday October 25, 2022", p.Date)
	assert.Equal(t, "Title", p.Title)
	assert.Equal(t, "Keywords: a Abstract: b", p.Abstract)
	assert.Empty(t, program.Rooms)
}

func TestProgramScraper_Rooms(t *testing.T) {
	page := `<html><body><h3>Technical Program for Monday</h3><table>
<tr class="sHdr"><td>S1</td><td>Auditorium</td></tr>
<tr class="sHdr"><td>S1</td><td>Auditorium</td></tr>
<tr class="pHdr"><td>nothing</td></tr>
<tr class="sHdr"><td>S2</td><td>Hall B</td><td>ignored</td></tr>
</table></body></html>`

	program, err := createScraper(t).ScrapReader(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, timetable.RoomMap{"S1": "Auditorium", "S2": "Hall B"}, program.Rooms)
	assert.Empty(t, program.Papers)
	assert.NotNil(t, program.Papers)
}

func TestProgramScraper_StructureErrors(t *testing.T) {
	tts := map[string]string{
		"no date heading": `<html><body><p>nothing</p></body></html>`,
		"no separator":    strings.Replace(slotTemplate, "%s", "10:00-10:15 P1.2", 1),
		"no slot anchor": `<html><body><h3>x</h3><table>
<tr><td>10:00-10:15, P1.2</td></tr>
<tr><td><span class="pTtl"><a onclick="viewAbstract('7')">Title</a></span></td></tr>
<tr><td><div id="Ab7">abstract</div></td></tr></table></body></html>`,
		"no preceding row": `<html><body><h3>x</h3><table>
<tr><td><span class="pTtl"><a onclick="viewAbstract('7')">Title</a></span></td></tr>
<tr><td><div id="Ab7">abstract</div></td></tr></table></body></html>`,
		"too shallow": `<html><body><h3>x</h3><span class="pTtl"><a onclick="viewAbstract('7')">Title</a></span></body></html>`,
		"no handler number": `<html><body><h3>x</h3><table>
<tr><td><a>10:00-10:15, P1.2</a></td></tr>
<tr><td><span class="pTtl"><a onclick="viewAbstract()">Title</a></span></td></tr></table></body></html>`,
		"no abstract": `<html><body><h3>x</h3><table>
<tr><td><a>10:00-10:15, P1.2</a></td></tr>
<tr><td><span class="pTtl"><a onclick="viewAbstract('8')">Title</a></span></td></tr>
<tr><td><div id="Ab7">abstract</div></td></tr></table></body></html>`,
		"header without separator": `<html><body><h3>x</h3><table>
<tr class="sHdr"><td>S1 Auditorium</td></tr></table></body></html>`,
	}

	scraper := createScraper(t)
	for name, page := range tts {
		program, err := scraper.ScrapReader(strings.NewReader(page))
		assert.Error(t, err, name)
		errors.AssertCode(t, err, 422)
		assert.Nil(t, program.Papers, name)
		assert.Nil(t, program.Rooms, name)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(path.Join(os.TempDir(), "does-not-exist.html"))
	assert.Error(t, err)
}
