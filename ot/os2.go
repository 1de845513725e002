package ot

// OS2Table holds table 'OS/2'. Values are kept in font units.
//
// Descenders are expected to be ≤ 0. Some fonts store them as positive
// numbers; these are flipped and a warning is recorded.
type OS2Table struct {
	Version            uint16
	XAvgCharWidth      int16
	WeightClass        uint16
	WidthClass         uint16
	FsType             uint16
	SubscriptXSize     int16
	SubscriptYSize     int16
	SubscriptXOffset   int16
	SubscriptYOffset   int16
	SuperscriptXSize   int16
	SuperscriptYSize   int16
	SuperscriptXOffset int16
	SuperscriptYOffset int16
	StrikeoutSize      int16
	StrikeoutPosition  int16
	FamilyClass        int16
	Panose             [10]byte
	VendorID           [4]byte
	FsSelection        uint16
	FirstCharIndex     uint16
	LastCharIndex      uint16
	TypoAscender       int16
	TypoDescender      int16
	TypoLineGap        int16
	WinAscent          uint16
	WinDescent         int // usWinDescent, flipped to be ≤ 0
	CodePageRange1     uint32
	CodePageRange2     uint32
	XHeight            int16
	CapHeight          int
}

// Embedding permission value of OS2Table.FsType which forbids embedding.
const FsTypeRestrictedLicense = 0x0002

// AllowsEmbedding reports whether the font license permits embedding.
func (os2 *OS2Table) AllowsEmbedding() bool {
	return os2.FsType != FsTypeRestrictedLicense
}

// decodeOS2 reads table 'OS/2'. For table versions without sCapHeight, the cap
// height is estimated as 70% of the em.
func (d *decoder) decodeOS2(upem UnitsPerEm) (*OS2Table, error) {
	loc, err := d.seekTable(TagOS2, 0)
	if err != nil {
		return nil, err
	}
	t := &OS2Table{}
	r := d.r
	t.Version = r.ReadU16()
	t.XAvgCharWidth = r.ReadI16()
	t.WeightClass = r.ReadU16()
	t.WidthClass = r.ReadU16()
	t.FsType = r.ReadU16()
	t.SubscriptXSize = r.ReadI16()
	t.SubscriptYSize = r.ReadI16()
	t.SubscriptXOffset = r.ReadI16()
	t.SubscriptYOffset = r.ReadI16()
	t.SuperscriptXSize = r.ReadI16()
	t.SuperscriptYSize = r.ReadI16()
	t.SuperscriptXOffset = r.ReadI16()
	t.SuperscriptYOffset = r.ReadI16()
	t.StrikeoutSize = r.ReadI16()
	t.StrikeoutPosition = r.ReadI16()
	t.FamilyClass = r.ReadI16()
	r.ReadFull(t.Panose[:])
	r.Skip(16) // ulUnicodeRange1..4
	r.ReadFull(t.VendorID[:])
	t.FsSelection = r.ReadU16()
	t.FirstCharIndex = r.ReadU16()
	t.LastCharIndex = r.ReadU16()
	t.TypoAscender = r.ReadI16()
	t.TypoDescender = r.ReadI16()
	typoDescenderAt := r.Pos() - 2
	t.TypoLineGap = r.ReadI16()
	t.WinAscent = r.ReadU16()
	t.WinDescent = int(r.ReadU16())
	winDescenderAt := r.Pos() - 2
	if t.Version > 0 {
		t.CodePageRange1 = r.ReadU32()
		t.CodePageRange2 = r.ReadU32()
	}
	if t.Version > 1 {
		t.XHeight = r.ReadI16()
		t.CapHeight = int(r.ReadI16())
	} else {
		t.CapHeight = int(0.7 * float64(upem))
	}
	if err := d.check(TagOS2); err != nil {
		return nil, err
	}
	if t.TypoDescender > 0 {
		d.warn.addWarning(TagOS2, typoDescenderAt, "sTypoDescender %d is positive, flipped", t.TypoDescender)
		t.TypoDescender = -t.TypoDescender
	}
	if t.WinDescent > 0 {
		d.warn.addWarning(TagOS2, winDescenderAt, "usWinDescent %d flipped to negative", t.WinDescent)
		t.WinDescent = -t.WinDescent
	}
	tracer().Debugf("OS/2 version %d at offset %d: weight = %d, width = %d",
		t.Version, loc.Offset, t.WeightClass, t.WidthClass)
	return t, nil
}
