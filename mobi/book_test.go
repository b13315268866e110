package mobi

import (
	"errors"
	"slices"
	"testing"

	"hdmerge/common"
	"hdmerge/mobi/mobitest"
	"hdmerge/pdb"
)

func TestParseBook(t *testing.T) {
	book, err := ParseBook(mobitest.Book())
	if err != nil {
		t.Fatalf("ParseBook() error = %v", err)
	}

	if book.Magic != MagicBook {
		t.Errorf("Magic = %s, want %s", book.Magic, MagicBook)
	}
	if book.Version != 8 {
		t.Errorf("Version = %d, want 8", book.Version)
	}
	if book.FirstImage != 3 {
		t.Errorf("FirstImage = %d, want 3", book.FirstImage)
	}
	if book.PrintReplica {
		t.Error("PrintReplica = true, want false")
	}
	if book.Encrypted() {
		t.Error("Encrypted() = true, want false")
	}
	if book.Ext() != ".azw3" {
		t.Errorf("Ext() = %q, want .azw3", book.Ext())
	}
	if book.Meta.Title != "Sample Book" {
		t.Errorf("Meta.Title = %q, want %q", book.Meta.Title, "Sample Book")
	}
}

func TestParseBook_TextContainer(t *testing.T) {
	data := mobitest.Container(pdb.TagText,
		mobitest.Record0{Version: 8}.Bytes(),
		[]byte("plain text"),
		mobitest.JPEG('x', 40),
	)

	book, err := ParseBook(data)
	if err != nil {
		t.Fatalf("ParseBook() error = %v", err)
	}
	if book.Magic != MagicText {
		t.Errorf("Magic = %s, want %s", book.Magic, MagicText)
	}
	// version field is only meaningful for BOOKMOBI
	if book.Version != -1 {
		t.Errorf("Version = %d, want -1", book.Version)
	}
	if book.OutputKind() != common.OutputKindLegacy {
		t.Errorf("OutputKind() = %s, want %s", book.OutputKind(), common.OutputKindLegacy)
	}
}

func TestParseBook_PrintReplica(t *testing.T) {
	data := mobitest.Container(pdb.TagBook,
		mobitest.Record0{Version: 8}.Bytes(),
		[]byte("%MOP\x00\x00\x00\x01replica"),
		mobitest.JPEG('x', 40),
	)

	book, err := ParseBook(data)
	if err != nil {
		t.Fatalf("ParseBook() error = %v", err)
	}
	if !book.PrintReplica {
		t.Fatal("PrintReplica = false, want true")
	}
	if book.Ext() != ".azw4" {
		t.Errorf("Ext() = %q, want .azw4", book.Ext())
	}
}

func TestParseBook_Encrypted(t *testing.T) {
	data := mobitest.Container(pdb.TagBook,
		mobitest.Record0{Version: 6, Crypto: 2}.Bytes(),
		[]byte("%MOP encrypted, ignored"),
		mobitest.JPEG('x', 40),
	)

	book, err := ParseBook(data)
	if err != nil {
		t.Fatalf("ParseBook() error = %v", err)
	}
	if !book.Encrypted() || book.CryptoType != 2 {
		t.Fatalf("Encrypted() = %v, CryptoType = %d; want true, 2", book.Encrypted(), book.CryptoType)
	}
	if book.PrintReplica {
		t.Error("PrintReplica must not be detected for encrypted book")
	}

	_, err = book.Placeholders()
	if !errors.Is(err, pdb.ErrEncrypted) {
		t.Errorf("Placeholders() error = %v, want ErrEncrypted", err)
	}
}

func TestParseBook_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{
			name: "bad magic",
			data: mobitest.Container("TPZ0DATA", mobitest.Record0{Version: 8}.Bytes()),
			want: pdb.ErrBadMagic,
		},
		{
			name: "resource container is not a book",
			data: mobitest.Container(pdb.TagResource, mobitest.Record0{Version: 8}.Bytes()),
			want: pdb.ErrBadMagic,
		},
		{
			name: "no records",
			data: mobitest.Container(pdb.TagBook),
			want: pdb.ErrTruncated,
		},
		{
			name: "record 0 shorter than PalmDOC header",
			data: mobitest.Container(pdb.TagBook, mobitest.Record0{Short: 10}.Bytes()),
			want: pdb.ErrTruncated,
		},
		{
			name: "record 0 shorter than version field",
			data: mobitest.Container(pdb.TagBook, mobitest.Record0{Short: 0x40}.Bytes()),
			want: pdb.ErrTruncated,
		},
		{
			name: "too short",
			data: []byte("BOOKMOBI"),
			want: pdb.ErrTruncated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBook(tt.data)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ParseBook() error = %v, want %v", err, tt.want)
			}
			var fe *pdb.FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("ParseBook() error is %T, want *pdb.FormatError", err)
			}
		})
	}
}

func TestOutputKindFor(t *testing.T) {
	tests := []struct {
		replica bool
		version int
		want    common.OutputKind
	}{
		{true, 8, common.OutputKindReplica},
		{true, 6, common.OutputKindReplica},
		{true, -1, common.OutputKindReplica},
		{false, 8, common.OutputKindModern},
		{false, 10, common.OutputKindModern},
		{false, 7, common.OutputKindLegacy},
		{false, 6, common.OutputKindLegacy},
		{false, -1, common.OutputKindLegacy},
	}

	for _, tt := range tests {
		if got := OutputKindFor(tt.replica, tt.version); got != tt.want {
			t.Errorf("OutputKindFor(%v, %d) = %s, want %s", tt.replica, tt.version, got, tt.want)
		}
	}
}

func TestPlaceholders(t *testing.T) {
	book, err := ParseBook(mobitest.Book())
	if err != nil {
		t.Fatalf("ParseBook() error = %v", err)
	}

	got, err := book.Placeholders()
	if err != nil {
		t.Fatalf("Placeholders() error = %v", err)
	}
	if !slices.Equal(got, mobitest.Placeholders) {
		t.Errorf("Placeholders() = %v, want %v", got, mobitest.Placeholders)
	}
}

func TestPlaceholders_FirstImageBound(t *testing.T) {
	records := [][]byte{
		nil,
		// compressed text happening to look like JPEG
		mobitest.JPEG('t', 20),
		[]byte("more text"),
		mobitest.JPEG('a', 30),
		mobitest.JPEG('b', 30),
	}

	tests := []struct {
		name  string
		first uint32
		want  []int
	}{
		{"bounded by header", 3, []int{3, 4}},
		{"not set", 0xFFFFFFFF, []int{1, 3, 4}},
		{"past record count", 100, []int{1, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := slices.Clone(records)
			recs[0] = mobitest.Record0{Version: 8, FirstImage: tt.first}.Bytes()
			book, err := ParseBook(mobitest.Container(pdb.TagBook, recs...))
			if err != nil {
				t.Fatalf("ParseBook() error = %v", err)
			}
			got, err := book.Placeholders()
			if err != nil {
				t.Fatalf("Placeholders() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Placeholders() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadMetadata(t *testing.T) {
	rec := mobitest.Record0{
		Version:  8,
		FullName: "Header Title",
		Exth: []mobitest.ExthRecord{
			{Type: exthAuthor, Data: "First Author"},
			{Type: exthASIN, Data: "b00-abc-1234"},
			{Type: exthAuthor, Data: "  Second Author "},
			{Type: exthUpdatedTitle, Data: "Updated Title"},
			{Type: exthLanguage, Data: "en"},
		},
	}.Bytes()

	md := readMetadata("db_name", rec)
	want := Metadata{
		Title:    "Updated Title",
		Author:   "First Author, Second Author",
		ASIN:     "B00ABC1234",
		Language: "en",
	}
	if md != want {
		t.Errorf("readMetadata() = %+v, want %+v", md, want)
	}
}

func TestReadMetadata_Fallbacks(t *testing.T) {
	t.Run("full name", func(t *testing.T) {
		md := readMetadata("db_name", mobitest.Record0{Version: 8, FullName: "Header Title"}.Bytes())
		if md.Title != "Header Title" {
			t.Errorf("Title = %q, want %q", md.Title, "Header Title")
		}
	})

	t.Run("database name", func(t *testing.T) {
		md := readMetadata("db_name", mobitest.Record0{Version: 8}.Bytes())
		if md.Title != "db_name" {
			t.Errorf("Title = %q, want %q", md.Title, "db_name")
		}
	})

	t.Run("no MOBI header", func(t *testing.T) {
		md := readMetadata("db_name", make([]byte, 16))
		if md != (Metadata{Title: "db_name"}) {
			t.Errorf("readMetadata() = %+v", md)
		}
	})

	t.Run("bad ASIN dropped", func(t *testing.T) {
		md := readMetadata("db_name", mobitest.Record0{Version: 8, Exth: []mobitest.ExthRecord{{Type: exthASIN, Data: "not-an-asin!"}}}.Bytes())
		if md.ASIN != "" {
			t.Errorf("ASIN = %q, want empty", md.ASIN)
		}
	})

	t.Run("damaged EXTH", func(t *testing.T) {
		rec := mobitest.Record0{Version: 8, Exth: []mobitest.ExthRecord{{Type: exthAuthor, Data: "Author"}}}.Bytes()
		rec = rec[:len(rec)-3]
		md := readMetadata("db_name", rec)
		if md.Author != "" {
			t.Errorf("Author = %q, want empty", md.Author)
		}
	})
}

func TestReadMetadata_CP1252(t *testing.T) {
	rec := mobitest.Record0{
		Version:  6,
		Encoding: encodingCP1252,
		FullName: "Caf\xe9",
		Exth:     []mobitest.ExthRecord{{Type: exthAuthor, Data: "Ren\xe9e \x96 D\xfcrer"}},
	}.Bytes()

	md := readMetadata("db_name", rec)
	if md.Title != "Café" {
		t.Errorf("Title = %q, want %q", md.Title, "Café")
	}
	if md.Author != "Renée – Dürer" {
		t.Errorf("Author = %q, want %q", md.Author, "Renée – Dürer")
	}
}

func TestPlaceholders_TextRecords(t *testing.T) {
	// text records starting with words which resemble image signatures
	gifText := []byte("GIFT ideas for the holidays")
	bmpText := []byte("BMW owners manual, chapter 1")

	tests := []struct {
		name    string
		tag     string
		rec0    mobitest.Record0
		records [][]byte
		want    []int
	}{
		{
			name:    "plain text container",
			tag:     pdb.TagText,
			rec0:    mobitest.Record0{TextRecords: 2},
			records: [][]byte{gifText, bmpText, mobitest.JPEG('a', 40)},
			want:    []int{3},
		},
		{
			name:    "text count not set",
			tag:     pdb.TagText,
			records: [][]byte{gifText, bmpText, mobitest.JPEG('a', 40)},
			want:    []int{3},
		},
		{
			name:    "first image not set",
			tag:     pdb.TagBook,
			rec0:    mobitest.Record0{TextRecords: 2, Version: 6, FirstImage: 0xFFFFFFFF},
			records: [][]byte{mobitest.JPEG('t', 30), mobitest.PNG('t', 30), mobitest.JPEG('a', 40)},
			want:    []int{3},
		},
		{
			name:    "first image inside text",
			tag:     pdb.TagBook,
			rec0:    mobitest.Record0{TextRecords: 2, Version: 8, FirstImage: 1},
			records: [][]byte{mobitest.JPEG('t', 30), []byte("text"), mobitest.JPEG('a', 40), mobitest.PNG('b', 40)},
			want:    []int{3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book, err := ParseBook(mobitest.Container(tt.tag, append([][]byte{tt.rec0.Bytes()}, tt.records...)...))
			if err != nil {
				t.Fatalf("ParseBook() error = %v", err)
			}
			got, err := book.Placeholders()
			if err != nil {
				t.Fatalf("Placeholders() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Placeholders() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlaceholders_CombinedFile(t *testing.T) {
	data := mobitest.Container(pdb.TagBook,
		mobitest.Record0{TextRecords: 1, Version: 6, FirstImage: 2}.Bytes(),
		[]byte("mobi7 text"),
		mobitest.JPEG('a', 40),
		[]byte("BOUNDARY"),
		mobitest.Record0{TextRecords: 1, Version: 8, FirstImage: 2}.Bytes(),
		[]byte("BM\x00\x00\x00\x00\x00\x00\x00\x00\x36\x00\x00\x00\x28\x00\x00\x00 kf8 text"),
		mobitest.JPEG('k', 40),
		mobitest.EOF(),
	)

	book, err := ParseBook(data)
	if err != nil {
		t.Fatalf("ParseBook() error = %v", err)
	}
	got, err := book.Placeholders()
	if err != nil {
		t.Fatalf("Placeholders() error = %v", err)
	}
	if !slices.Equal(got, []int{2}) {
		t.Errorf("Placeholders() = %v, want [2]", got)
	}
}
