package wire

import "testing"

func BenchmarkCodec_ReadFloat40(b *testing.B) {
	buf := []byte{0x00, 0x04, 0x64, 0x00, 0x00}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = ReadFloat40(buf, 0)
	}
}

func BenchmarkCodec_WriteFloat40(b *testing.B) {
	buf := make([]byte, 0, 5)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = WriteFloat40(buf[:0], 12.5)
	}
}

func BenchmarkCodec_ReadInt24(b *testing.B) {
	buf := []byte{0x7F, 0xFF, 0xFF}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = ReadInt24(buf, 0)
	}
}

func BenchmarkCodec_WriteInt24(b *testing.B) {
	buf := make([]byte, 0, 3)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = WriteInt24(buf[:0], 0x7FFFFF)
	}
}
