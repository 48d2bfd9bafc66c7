package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFullLine(t *testing.T) {
	content := "101|Rahim Uddin|VOT-556677|Karim Uddin|Amena Begum|Farmer|1975-03-12|Vill: Charpara, Mymensingh|01711000000|https://facebook.com/rahim|https://i.ibb.co/abc/r.jpg|Knows the area well"

	res := Parse(content)
	require.Len(t, res.Records, 1)
	assert.Equal(t, 0, res.Skipped)

	r := res.Records[0]
	assert.Equal(t, "101", r.SerialNumber)
	assert.Equal(t, "Rahim Uddin", r.FullName)
	assert.Equal(t, "VOT-556677", r.VoterNumber)
	assert.Equal(t, "Karim Uddin", r.FatherName)
	assert.Equal(t, "Amena Begum", r.MotherName)
	assert.Equal(t, "Farmer", r.Occupation)
	assert.Equal(t, "1975-03-12", r.DateOfBirth)
	assert.Equal(t, "Vill: Charpara, Mymensingh", r.Address)
	assert.Equal(t, "01711000000", r.PhoneNumber)
	assert.Equal(t, "https://facebook.com/rahim", r.FacebookLink)
	assert.Equal(t, "https://i.ibb.co/abc/r.jpg", r.PhotoLink)
	assert.Equal(t, "Knows the area well", r.Description)
}

func TestParseMissingTrailingFields(t *testing.T) {
	res := Parse("102|Karima Khatun|VOT-112233")
	require.Len(t, res.Records, 1)

	r := res.Records[0]
	assert.Equal(t, "102", r.SerialNumber)
	assert.Equal(t, "Karima Khatun", r.FullName)
	assert.Equal(t, "VOT-112233", r.VoterNumber)
	assert.Equal(t, "", r.FatherName)
	assert.Equal(t, "", r.Description)
}

func TestParseTrimsWhitespace(t *testing.T) {
	res := Parse("  103 |  Abdul Malek  | VOT-1 ")
	require.Len(t, res.Records, 1)
	assert.Equal(t, "103", res.Records[0].SerialNumber)
	assert.Equal(t, "Abdul Malek", res.Records[0].FullName)
	assert.Equal(t, "VOT-1", res.Records[0].VoterNumber)
}

func TestParseSkipsMalformedLines(t *testing.T) {
	content := "1|Person One|V1\n" +
		"a|b|c|d|e|f|g|h|i|j|k|l|m|too|many\n" + // too many fields
		"2|Person Two|V2\n" +
		"| | |\n" + // all-empty fields
		"3|Person Three|V3\n"

	res := Parse(content)
	assert.Len(t, res.Records, 3)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, "Person One", res.Records[0].FullName)
	assert.Equal(t, "Person Three", res.Records[2].FullName)
}

func TestParseIgnoresBlankAndCommentLines(t *testing.T) {
	content := "\n# voter list, ward 4\n1|Person One\n\n   \n2|Person Two\n"

	res := Parse(content)
	assert.Len(t, res.Records, 2)
	assert.Equal(t, 0, res.Skipped)
}

func TestParseSkipsHeaderLine(t *testing.T) {
	content := "serial_number|full_name|voter_number|father_name|mother_name|occupation|date_of_birth|address|phone_number|facebook_link|photo_link|description\n" +
		"1|Person One|V1\n"

	res := Parse(content)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Person One", res.Records[0].FullName)
	assert.Equal(t, 0, res.Skipped)
}

func TestParseHeaderOnlyOnFirstLine(t *testing.T) {
	// the canonical header text on a later line is just a record
	content := "1|Person One\nserial_number|full_name|voter_number\n"

	res := Parse(content)
	assert.Len(t, res.Records, 2)
	assert.Equal(t, "full_name", res.Records[1].FullName)
}

func TestParseEmptyContent(t *testing.T) {
	res := Parse("")
	assert.Empty(t, res.Records)
	assert.Equal(t, 0, res.Skipped)
}
