package entity

// DecodeTribe assembles a TribeRecord from a raw .arktribe buffer. The
// tribe ID is carried in from the filename.
func DecodeTribe(tribeID int32, data []byte) *TribeRecord {
	rec := &TribeRecord{
		TribeID:  tribeID,
		Problems: make(Problems),
	}

	scan := newFieldScan(data, rec.Problems)

	rec.TribeName = scan.str("TribeName")
	rec.OwnerPlayerDataID = scan.uint32Of("OwnerPlayerDataId")

	names := scan.stringsOf("MembersPlayerName")
	ids := scan.uint32sOf("MembersPlayerDataID")
	rec.Members = zipMembers(names, ids)

	rec.TribeLog = scan.stringsOf("TribeLog")
	rec.TamedDinoCount = scan.int32Of("TamedDinoCount")

	return rec
}

// zipMembers pairs the parallel member-name and member-ID arrays
// positionally. Names past the end of the ID array keep a nil ID; IDs
// past the end of the name array are dropped, since a bare ID identifies
// nobody.
func zipMembers(names []string, ids []uint32) []TribeMember {
	if len(names) == 0 {
		return nil
	}

	members := make([]TribeMember, 0, len(names))
	for i, name := range names {
		m := TribeMember{Name: name}
		if i < len(ids) {
			id := ids[i]
			m.PlayerDataID = &id
		}
		members = append(members, m)
	}

	return members
}
