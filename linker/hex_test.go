package linker

import "testing"

func TestWriteHex_SingleRecordChecksum(t *testing.T) {
	// count=3, addr=0000, type=00, data=01 02 03; sum = 3+0+0+0+1+2+3 = 9,
	// checksum = 256-9 = 0xF7.
	got := WriteHex([]byte{0x01, 0x02, 0x03}, 0x0000, 16)
	want := ":03000000010203F7\r\n" + ":00000001FF\r\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteHex_LoadAddressInRecord(t *testing.T) {
	// count=1, addr=0100, type=00, data=76; sum = 1+1+0+0+0x76(118) = 120,
	// checksum = 256-120 = 0x88.
	got := WriteHex([]byte{0x76}, 0x0100, 16)
	want := ":0101000076" + "88" + "\r\n" + ":00000001FF\r\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteHex_SplitsIntoMultipleRecordsByRecordSize(t *testing.T) {
	buf := make([]byte, 20)
	for i := range buf {
		buf[i] = byte(i)
	}
	got := WriteHex(buf, 0x0000, 16)
	// First 16 bytes in one record, remaining 4 in a second, then EOF.
	records := 0
	for _, c := range got {
		if c == ':' {
			records++
		}
	}
	if records != 3 {
		t.Errorf("record count = %d, want 3 (16-byte + 4-byte + EOF)", records)
	}
}

func TestWriteHex_EOFRecordIsFixed(t *testing.T) {
	got := WriteHex(nil, 0x0000, 16)
	if got != ":00000001FF\r\n" {
		t.Errorf("got %q, want the bare EOF record", got)
	}
}

func TestWriteHex_NonPositiveRecordSizeDefaultsTo16(t *testing.T) {
	buf := make([]byte, 17)
	got := WriteHex(buf, 0, 0)
	records := 0
	for _, c := range got {
		if c == ':' {
			records++
		}
	}
	if records != 3 {
		t.Errorf("record count = %d, want 3 (16 + 1 + EOF) for recordSize<=0 defaulting to 16", records)
	}
}
