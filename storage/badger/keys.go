// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"encoding/binary"

	"github.com/poiesic/homeqa/core"
)

const (
	documentPrefix            = "docrec:"
	documentFingerprintPrefix = "docfp:"
	documentIDSeq             = "docseq"
)

// makeDocumentKey generates a key for a document by insertion sequence.
// Format: prefix + 8 byte big endian sequence, so iteration follows
// insertion order.
func makeDocumentKey(seq uint64) []byte {
	return appendUint64([]byte(documentPrefix), seq)
}

// makeFingerprintKey generates the fingerprint index key of a document.
// Format: prefix + 8 byte big endian fingerprint
func makeFingerprintKey(fingerprint core.ID) []byte {
	return appendUint64([]byte(documentFingerprintPrefix), uint64(fingerprint))
}

func appendUint64(prefix []byte, v uint64) []byte {
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], v)
	return buf
}
