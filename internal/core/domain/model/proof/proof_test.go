package proof_test

import (
	"testing"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/proof"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProof(t *testing.T) {
	orderID := kernel.NewUUID()
	subjectID := kernel.NewUUID()
	now := time.Now()

	t.Run("qr scan", func(t *testing.T) {
		p, err := proof.NewProof(orderID, proof.SubjectWaypoint, subjectID, proof.MethodQRCode, subjectID.String(), "left at door", `{"device":"scanner-1"}`, now)

		require.NoError(t, err)
		assert.Equal(t, "proof", p.PublicID().Type())
		assert.Equal(t, proof.SubjectWaypoint, p.SubjectType())
		assert.Equal(t, proof.MethodQRCode, p.Method())
		assert.Equal(t, subjectID.String(), p.RawData())
		assert.Equal(t, "left at door", p.Remarks())
		assert.Nil(t, p.FileID())
		require.NoError(t, p.Validate())
	})

	t.Run("invalid subject type", func(t *testing.T) {
		_, err := proof.NewProof(orderID, proof.SubjectType("driver"), subjectID, proof.MethodQRCode, "", "", "", now)

		require.Error(t, err)
	})

	t.Run("invalid method", func(t *testing.T) {
		_, err := proof.NewProof(orderID, proof.SubjectOrder, subjectID, proof.Method("photo"), "", "", "", now)

		require.Error(t, err)
	})

	t.Run("requires subject id", func(t *testing.T) {
		_, err := proof.NewProof(orderID, proof.SubjectOrder, kernel.UUID{}, proof.MethodQRCode, "", "", "", now)

		require.Error(t, err)
	})
}

func TestProof_AttachFile(t *testing.T) {
	p, err := proof.NewProof(kernel.NewUUID(), proof.SubjectOrder, kernel.NewUUID(), proof.MethodSignature, "", "", "", time.Now())
	require.NoError(t, err)

	fileID := kernel.NewUUID()
	require.NoError(t, p.AttachFile(fileID))
	require.NotNil(t, p.FileID())
	assert.True(t, p.FileID().IsEqual(fileID))

	require.Error(t, p.AttachFile(kernel.UUID{}))
}

func TestProof_Validate_NotConstructed(t *testing.T) {
	var p proof.Proof

	require.ErrorIs(t, p.Validate(), proof.ErrProofIsNotConstructed)
}

func TestRestoreProof(t *testing.T) {
	id := kernel.NewUUID()
	publicID := kernel.NewPublicID("proof")
	fileID := kernel.NewUUID()
	now := time.Now()

	p, err := proof.RestoreProof(id, publicID, kernel.NewUUID(), proof.SubjectEntity, kernel.NewUUID(), proof.MethodSignature, "", "fragile", "", &fileID, now)

	require.NoError(t, err)
	assert.True(t, p.ID().IsEqual(id))
	assert.Equal(t, proof.MethodSignature, p.Method())
	require.NoError(t, p.Validate())
}
